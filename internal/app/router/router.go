package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	historyhandler "stock_quote/internal/feature/history/transport/handler"
	quotehandler "stock_quote/internal/feature/quote/transport/handler"
	"stock_quote/internal/platform/http/handler"
)

func NewRouter(quote *quotehandler.QuoteHandler, history *historyhandler.HistoryHandler,
	health *handler.HealthHandler) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(quotehandler.Templates())

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	// フォームページと検索
	r.GET("/", quote.FormPage)
	r.POST("/quote", quote.PostQuote)
	// 外部APIの生レスポンス確認用（キャッシュ・履歴を経由しない）
	r.GET("/debug/quote", quote.DebugQuote)

	// JSON API はブラウザ外のクライアントからも参照されるためCORSを許可
	api := r.Group("/api")
	api.Use(cors.Default())
	{
		api.GET("/history", history.List)
	}

	return r
}
