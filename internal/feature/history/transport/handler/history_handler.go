// Package handler はhistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stock_quote/internal/feature/history/domain/entity"
	"stock_quote/internal/feature/history/transport/http/dto"
)

// HistoryUsecase は検索履歴のユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type HistoryUsecase interface {
	ListRecent(ctx context.Context, limit int) ([]entity.HistoryRecord, error)
}

// HistoryHandler は検索履歴に関するHTTPリクエストを処理します。
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler は新しい HistoryHandler を作成します。
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List は直近の検索履歴を新しい順にJSONで返します。
//
// エンドポイント例:
// GET /api/history?limit=50
func (h *HistoryHandler) List(c *gin.Context) {
	// 不正な値は0としてusecaseに渡し、既定値への変換はusecaseで行う
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.uc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.HistoryItem, 0, len(records))
	for _, r := range records {
		item := dto.HistoryItem{
			Ticker:     r.Ticker,
			Source:     r.Source,
			SearchedAt: r.SearchedAt.UTC().Format(time.RFC3339Nano),
		}
		if r.Price.Valid {
			f := r.Price.Decimal.InexactFloat64()
			item.Price = &f
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}
