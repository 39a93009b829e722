// Package di provides dependency injection factories for creating application components.
package di

import (
	historyadapters "stock_quote/internal/feature/history/adapters"
	historyusecase "stock_quote/internal/feature/history/usecase"
	quoteusecase "stock_quote/internal/feature/quote/usecase"
	"stock_quote/internal/platform/cache"
	"stock_quote/internal/platform/externalapi/alphavantage"
	infrahttp "stock_quote/internal/platform/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewQuoteProvider creates a fully configured Alpha Vantage client with HTTP client.
func NewQuoteProvider() *alphavantage.Client {
	cfg := alphavantage.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return alphavantage.NewClient(cfg, httpClient)
}

// NewQuoteCache creates the Redis-backed quote cache.
// A nil client yields a cache that always misses.
func NewQuoteCache(rdb *redis.Client) *cache.RedisQuoteCache {
	return cache.NewRedisQuoteCache(rdb)
}

// NewHistoryUsecase wires the search history log onto db.
func NewHistoryUsecase(db *gorm.DB) *historyusecase.HistoryUsecase {
	return historyusecase.NewHistoryUsecase(historyadapters.NewHistoryRepository(db))
}

// NewQuoteUsecase assembles the quote lookup service around the given cache and history log.
// The positive TTL comes from CACHE_TTL_SECONDS.
func NewQuoteUsecase(qc quoteusecase.QuoteCache, history quoteusecase.HistoryRecorder) *quoteusecase.QuoteUsecase {
	ttl := cache.LoadConfig().PositiveTTL
	return quoteusecase.NewQuoteUsecase(qc, NewQuoteProvider(), history, ttl)
}
