// Package entity defines the domain models for the quote feature.
package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CacheKeyPrefix is the namespace of quote entries in the cache.
const CacheKeyPrefix = "quote:"

// Source はクォート結果の取得元を表します。
type Source string

const (
	// SourceCache はキャッシュから返された結果です。
	SourceCache Source = "cache"
	// SourceAPI は外部APIを呼び出して得た結果です。
	SourceAPI Source = "api"
)

// QuoteResult is the answer to a single lookup. Price is invalid (null) when
// the provider could not supply one.
type QuoteResult struct {
	Ticker string              `json:"ticker"` // Normalized ticker symbol (e.g., "AAPL")
	Price  decimal.NullDecimal `json:"price"`  // Latest price, or null on failure
	Source Source              `json:"source"` // Where the price came from
}

// NormalizeTicker はティッカーの前後の空白を除去し、大文字に変換します。
// "tsla" と "TSLA" は同じキャッシュキー・履歴行になります。
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// CacheKey returns the cache key for ticker, e.g. "quote:TSLA".
func CacheKey(ticker string) string {
	return CacheKeyPrefix + NormalizeTicker(ticker)
}
