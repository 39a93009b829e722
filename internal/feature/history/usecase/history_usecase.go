// Package usecase implements the business logic for the search history.
package usecase

import (
	"context"
	"strings"

	"stock_quote/internal/feature/history/domain/entity"
)

const (
	// DefaultLimit is the number of rows returned when no limit is given.
	DefaultLimit = 50
	// MaxLimit caps how many rows a single query may return.
	MaxLimit = 500
)

// HistoryRepository abstracts the append-only log store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type HistoryRepository interface {
	Insert(ctx context.Context, rec entity.HistoryRecord) error
	ListRecent(ctx context.Context, limit int) ([]entity.HistoryRecord, error)
}

// HistoryUsecase provides business logic for the search history.
type HistoryUsecase struct {
	repo HistoryRepository
}

// NewHistoryUsecase creates a new HistoryUsecase with the given repository.
func NewHistoryUsecase(r HistoryRepository) *HistoryUsecase {
	return &HistoryUsecase{repo: r}
}

// Record appends one lookup to the log. The ticker is stored upper-cased and
// the timestamp in UTC.
func (u *HistoryUsecase) Record(ctx context.Context, rec entity.HistoryRecord) error {
	rec.Ticker = strings.ToUpper(strings.TrimSpace(rec.Ticker))
	rec.SearchedAt = rec.SearchedAt.UTC()
	return u.repo.Insert(ctx, rec)
}

// ListRecent returns the most recent rows, newest first.
// A non-positive limit uses DefaultLimit; larger limits are capped at MaxLimit.
func (u *HistoryUsecase) ListRecent(ctx context.Context, limit int) ([]entity.HistoryRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return u.repo.ListRecent(ctx, limit)
}
