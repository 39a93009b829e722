// Package usecase はクォート取得（キャッシュ＋外部API）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	historyentity "stock_quote/internal/feature/history/domain/entity"
	"stock_quote/internal/feature/quote/domain/entity"
)

const (
	// DefaultPositiveTTL は取得に成功した価格をキャッシュする既定の期間です。
	DefaultPositiveTTL = 120 * time.Second
	// NegativeTTL は取得失敗をキャッシュする期間です。上流の一時的な障害で
	// 再試行が抑止される時間を短く抑えるため、固定で15秒とします。
	NegativeTTL = 15 * time.Second
)

// QuoteCache はクォートのキャッシュを抽象化します。
// 実装はエラーを呼び出し元に返さず、失敗はミス（Get）または無視（Set）として扱います。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type QuoteCache interface {
	Get(ctx context.Context, key string) (entity.CacheEntry, bool)
	Set(ctx context.Context, key string, entry entity.CacheEntry, ttl time.Duration)
}

// PriceProvider は外部のクォートAPIを抽象化します。
// 価格が得られない場合はnullの価格と診断ペイロードを返し、エラーは返しません。
type PriceProvider interface {
	FetchPrice(ctx context.Context, ticker string) (decimal.NullDecimal, entity.Diagnostic)
}

// HistoryRecorder は検索履歴の追記先です。
type HistoryRecorder interface {
	Record(ctx context.Context, rec historyentity.HistoryRecord) error
}

// QuoteUsecase composes the cache and the provider into a single lookup.
// It holds no locks: concurrent misses for the same ticker may each call the provider.
type QuoteUsecase struct {
	cache       QuoteCache
	provider    PriceProvider
	history     HistoryRecorder
	positiveTTL time.Duration
	now         func() time.Time
}

// NewQuoteUsecase はQuoteUsecaseの新しいインスタンスを生成します。
// positiveTTLが0以下の場合はDefaultPositiveTTLを使用します。historyはnilでも構いません。
func NewQuoteUsecase(cache QuoteCache, provider PriceProvider, history HistoryRecorder, positiveTTL time.Duration) *QuoteUsecase {
	if positiveTTL <= 0 {
		positiveTTL = DefaultPositiveTTL
	}
	return &QuoteUsecase{
		cache:       cache,
		provider:    provider,
		history:     history,
		positiveTTL: positiveTTL,
		now:         time.Now,
	}
}

// PositiveTTL returns how long successful quotes stay cached.
func (u *QuoteUsecase) PositiveTTL() time.Duration {
	return u.positiveTTL
}

// GetQuote はティッカーの価格と取得元を返します。
//
//  1. キャッシュにエントリがあれば（ネガティブキャッシュも含め）そのまま "cache" として返す
//  2. ミスの場合は外部APIを1回だけ呼び出す
//  3. 成功した価格はpositiveTTL、失敗はNegativeTTLでキャッシュする
//
// キャッシュの書き込みに失敗しても結果は "api" として返します。
func (u *QuoteUsecase) GetQuote(ctx context.Context, ticker string) entity.QuoteResult {
	ticker = entity.NormalizeTicker(ticker)
	key := entity.CacheKey(ticker)

	// 1) Check cache
	if cached, ok := u.cache.Get(ctx, key); ok {
		return entity.QuoteResult{Ticker: ticker, Price: cached.Price, Source: entity.SourceCache}
	}

	// 2) Fallback to the provider
	price, diag := u.provider.FetchPrice(ctx, ticker)

	// 3) Store in cache (best effort)
	if price.Valid {
		u.cache.Set(ctx, key, entity.NewPositiveEntry(price.Decimal, u.now()), u.positiveTTL)
	} else {
		u.cache.Set(ctx, key, entity.NewNegativeEntry(diag.Reason(), u.now()), NegativeTTL)
		// Keep the full payload out of the cache; log it for debugging instead
		slog.Warn("quote unavailable", "ticker", ticker, "raw", diag.String())
	}

	return entity.QuoteResult{Ticker: ticker, Price: price, Source: entity.SourceAPI}
}

// Lookup performs GetQuote and appends the outcome to the search history.
// A history write failure is logged and does not affect the result.
func (u *QuoteUsecase) Lookup(ctx context.Context, ticker string) entity.QuoteResult {
	res := u.GetQuote(ctx, ticker)
	if u.history == nil {
		return res
	}

	rec := historyentity.HistoryRecord{
		Ticker:     res.Ticker,
		Price:      res.Price,
		Source:     string(res.Source),
		SearchedAt: u.now().UTC(),
	}
	if err := u.history.Record(ctx, rec); err != nil {
		slog.Error("failed to record search history", "ticker", res.Ticker, "error", err)
	}
	return res
}

// Debug calls the provider directly, bypassing cache and history, and returns
// the parsed price together with the raw diagnostic payload.
func (u *QuoteUsecase) Debug(ctx context.Context, ticker string) (string, decimal.NullDecimal, entity.Diagnostic) {
	ticker = entity.NormalizeTicker(ticker)
	price, diag := u.provider.FetchPrice(ctx, ticker)
	return ticker, price, diag
}
