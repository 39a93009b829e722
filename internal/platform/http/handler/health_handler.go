// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Component statuses reported by the health check.
const (
	StatusUp       = "up"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

// pingTimeout bounds each component check.
const pingTimeout = 2 * time.Second

// Check is one dependency reported by /healthz. A nil Ping marks it disabled.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler はサービスヘルスチェック用の /healthz エンドポイントを処理します。
type HealthHandler struct {
	checks []Check
}

// NewHealthHandler は指定された依存先チェックでHealthHandlerを生成します。
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health はHTTPメソッドに応じてレスポンスし、キャッシュを防止します。
// 依存先が停止していてもサービスは縮退運転できるため、ステータスコードは常に200です。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"components": h.components(c.Request.Context()),
		})
	}
}

func (h *HealthHandler) components(ctx context.Context) map[string]string {
	out := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if chk.Ping == nil {
			out[chk.Name] = StatusDisabled
			continue
		}
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := chk.Ping(pctx)
		cancel()
		if err != nil {
			out[chk.Name] = StatusDown
			continue
		}
		out[chk.Name] = StatusUp
	}
	return out
}
