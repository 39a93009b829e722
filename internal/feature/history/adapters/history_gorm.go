// Package adapters はhistoryフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stock_quote/internal/feature/history/domain/entity"
	"stock_quote/internal/feature/history/usecase"
)

// historyGorm はHistoryRepositoryインターフェースのgorm実装です（SQLite／PostgreSQL）。
type historyGorm struct {
	db *gorm.DB
}

var _ usecase.HistoryRepository = (*historyGorm)(nil)

// NewHistoryRepository は指定されたDB接続でhistoryGormリポジトリの新しいインスタンスを生成します。
func NewHistoryRepository(db *gorm.DB) *historyGorm {
	return &historyGorm{db: db}
}

// SearchHistoryModel is one row of the search_history table.
// searched_at is kept as ISO-8601 text in UTC.
type SearchHistoryModel struct {
	ID         uint                `gorm:"primaryKey;autoIncrement"`
	Ticker     string              `gorm:"not null"`
	Price      decimal.NullDecimal `gorm:"type:numeric"`
	Source     string              `gorm:"not null"`
	SearchedAt string              `gorm:"not null"`
}

func (SearchHistoryModel) TableName() string {
	return "search_history"
}

func toModel(e entity.HistoryRecord) SearchHistoryModel {
	return SearchHistoryModel{
		Ticker:     e.Ticker,
		Price:      e.Price,
		Source:     e.Source,
		SearchedAt: e.SearchedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Insert は検索履歴を1行追記します。
func (r *historyGorm) Insert(ctx context.Context, rec entity.HistoryRecord) error {
	m := toModel(rec)
	return r.db.WithContext(ctx).Create(&m).Error
}

// ListRecent は新しい順に最大limit件の検索履歴を返します。
func (r *historyGorm) ListRecent(ctx context.Context, limit int) ([]entity.HistoryRecord, error) {
	var rows []SearchHistoryModel
	q := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.HistoryRecord, 0, len(rows))
	for _, m := range rows {
		at, err := time.Parse(time.RFC3339Nano, m.SearchedAt)
		if err != nil {
			return nil, fmt.Errorf("parse searched_at %q: %w", m.SearchedAt, err)
		}
		out = append(out, entity.HistoryRecord{
			Ticker:     m.Ticker,
			Price:      m.Price,
			Source:     m.Source,
			SearchedAt: at,
		})
	}
	return out, nil
}
