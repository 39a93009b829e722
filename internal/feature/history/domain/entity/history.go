// Package entity defines the domain models for the history feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryRecord is one append-only row per lookup request.
type HistoryRecord struct {
	Ticker     string              // Upper-cased ticker symbol
	Price      decimal.NullDecimal // Price returned to the user, null when unavailable
	Source     string              // "cache" or "api"
	SearchedAt time.Time           // When the lookup happened (UTC)
}
