package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownReason is stored on negative entries when no better reason is available.
const UnknownReason = "unknown"

// CacheEntry はキャッシュに保存されるクォートのペイロードです。
// Priceがnullの場合（ネガティブキャッシュ）は必ずReasonを持ちます。
type CacheEntry struct {
	Price    decimal.NullDecimal `json:"price"`
	CachedAt time.Time           `json:"cached_at"`
	Reason   string              `json:"reason,omitempty"`
}

// NewPositiveEntry creates an entry for a successfully retrieved price.
func NewPositiveEntry(price decimal.Decimal, at time.Time) CacheEntry {
	return CacheEntry{
		Price:    decimal.NewNullDecimal(price),
		CachedAt: at.UTC(),
	}
}

// NewNegativeEntry creates an entry recording a failed lookup.
func NewNegativeEntry(reason string, at time.Time) CacheEntry {
	if reason == "" {
		reason = UnknownReason
	}
	return CacheEntry{
		CachedAt: at.UTC(),
		Reason:   reason,
	}
}

// IsNegative reports whether the entry records a failed lookup.
func (e CacheEntry) IsNegative() bool {
	return !e.Price.Valid
}
