package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"AAPL", "quote:AAPL"},
		{"tsla", "quote:TSLA"},
		{" msft ", "quote:MSFT"},
		{"brk.b", "quote:BRK.B"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CacheKey(tt.input))
		})
	}
}

// TestNewNegativeEntry はネガティブエントリが常に理由を持つことを検証します。
func TestNewNegativeEntry(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 15, 9, 30, 0, 0, time.FixedZone("JST", 9*60*60))

	e := NewNegativeEntry("", at)
	assert.True(t, e.IsNegative())
	assert.Equal(t, UnknownReason, e.Reason)
	assert.Equal(t, time.UTC, e.CachedAt.Location())

	e = NewNegativeEntry("Note", at)
	assert.Equal(t, "Note", e.Reason)
}

func TestNewPositiveEntry(t *testing.T) {
	t.Parallel()

	e := NewPositiveEntry(decimal.RequireFromString("189.98"), time.Now())
	assert.False(t, e.IsNegative())
	assert.Empty(t, e.Reason)
	assert.True(t, e.Price.Decimal.Equal(decimal.RequireFromString("189.98")))
}
