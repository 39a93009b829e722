package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_quote/internal/feature/history/domain/entity"
)

// mockHistoryRepository is a mock implementation of the HistoryRepository interface.
type mockHistoryRepository struct {
	InsertFunc     func(ctx context.Context, rec entity.HistoryRecord) error
	ListRecentFunc func(ctx context.Context, limit int) ([]entity.HistoryRecord, error)
}

func (m *mockHistoryRepository) Insert(ctx context.Context, rec entity.HistoryRecord) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, rec)
	}
	return nil
}

func (m *mockHistoryRepository) ListRecent(ctx context.Context, limit int) ([]entity.HistoryRecord, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, errors.New("ListRecentFunc is not implemented")
}

// TestHistoryUsecase_Record はティッカーが大文字・時刻がUTCで保存されることを検証します。
func TestHistoryUsecase_Record(t *testing.T) {
	t.Parallel()

	var got entity.HistoryRecord
	repo := &mockHistoryRepository{
		InsertFunc: func(ctx context.Context, rec entity.HistoryRecord) error {
			got = rec
			return nil
		},
	}
	uc := NewHistoryUsecase(repo)

	jst := time.FixedZone("JST", 9*60*60)
	err := uc.Record(context.Background(), entity.HistoryRecord{
		Ticker:     " tsla ",
		Source:     "api",
		SearchedAt: time.Date(2025, 1, 15, 18, 30, 0, 0, jst),
	})

	require.NoError(t, err)
	assert.Equal(t, "TSLA", got.Ticker)
	assert.Equal(t, time.UTC, got.SearchedAt.Location())
	assert.Equal(t, 9, got.SearchedAt.Hour())
}

func TestHistoryUsecase_Record_Error(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("disk full")
	uc := NewHistoryUsecase(&mockHistoryRepository{
		InsertFunc: func(ctx context.Context, rec entity.HistoryRecord) error { return expectedErr },
	})

	err := uc.Record(context.Background(), entity.HistoryRecord{Ticker: "AAPL", Source: "api"})

	assert.ErrorIs(t, err, expectedErr)
}

// TestHistoryUsecase_ListRecent は件数の既定値と上限が適用されることを検証します。
func TestHistoryUsecase_ListRecent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero uses default", 0, DefaultLimit},
		{"negative uses default", -1, DefaultLimit},
		{"within range preserved", 10, 10},
		{"max preserved", MaxLimit, MaxLimit},
		{"above max is capped", MaxLimit + 1, MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotLimit int
			uc := NewHistoryUsecase(&mockHistoryRepository{
				ListRecentFunc: func(ctx context.Context, limit int) ([]entity.HistoryRecord, error) {
					gotLimit = limit
					return []entity.HistoryRecord{}, nil
				},
			})

			_, err := uc.ListRecent(context.Background(), tt.limit)

			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, gotLimit)
		})
	}
}
