package alphavantage

import "fmt"

// StatusError is returned for HTTP responses with status >= 400.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("alphavantage http %s", e.Status)
}
