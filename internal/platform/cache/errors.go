package cache

import "errors"

var (
	// ErrCacheDisabled is returned by Ping when no Redis client is configured.
	ErrCacheDisabled = errors.New("cache disabled")

	errNotAnObject = errors.New("cache payload is not a JSON object")
)
