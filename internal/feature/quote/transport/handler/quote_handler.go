// Package handler はquoteフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stock_quote/internal/feature/quote/domain/entity"
	"stock_quote/internal/feature/quote/transport/http/dto"
)

// IndexTemplate is the name of the form page template.
const IndexTemplate = "index.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded HTML templates for gin.Engine.SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

// QuoteUsecase はクォート取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuoteUsecase interface {
	Lookup(ctx context.Context, ticker string) entity.QuoteResult
	Debug(ctx context.Context, ticker string) (string, decimal.NullDecimal, entity.Diagnostic)
	PositiveTTL() time.Duration
}

// QuoteHandler はクォート検索のHTTPリクエストを処理します。
type QuoteHandler struct {
	uc QuoteUsecase
}

// NewQuoteHandler は指定されたusecaseでQuoteHandlerの新しいインスタンスを生成します。
func NewQuoteHandler(uc QuoteUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// FormPage はフォームページを表示します。?ticker= が指定されていれば検索結果も表示します。
//
// エンドポイント例:
// GET /?ticker=TSLA
func (h *QuoteHandler) FormPage(c *gin.Context) {
	ticker := c.Query("ticker")
	if strings.TrimSpace(ticker) == "" {
		h.render(c, "", nil)
		return
	}
	res := h.uc.Lookup(c.Request.Context(), ticker)
	h.render(c, ticker, &res)
}

// PostQuote はフォーム送信を処理し、検索結果を表示します。
//
// エンドポイント例:
// POST /quote (ticker=TSLA)
func (h *QuoteHandler) PostQuote(c *gin.Context) {
	ticker, ok := c.GetPostForm("ticker")
	if !ok || strings.TrimSpace(ticker) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ticker is required"})
		return
	}
	res := h.uc.Lookup(c.Request.Context(), ticker)
	h.render(c, ticker, &res)
}

// DebugQuote はキャッシュを経由せずにプロバイダーを呼び出し、生のペイロードを返します。
//
// エンドポイント例:
// GET /debug/quote?ticker=TSLA
func (h *QuoteHandler) DebugQuote(c *gin.Context) {
	ticker := c.Query("ticker")
	if strings.TrimSpace(ticker) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ticker is required"})
		return
	}

	normalized, price, diag := h.uc.Debug(c.Request.Context(), ticker)
	c.JSON(http.StatusOK, dto.DebugQuoteResponse{
		Ticker:      normalized,
		PriceParsed: toFloat(price),
		RawPayload:  diag,
	})
}

// render always answers 200; a failed lookup shows a blank price.
func (h *QuoteHandler) render(c *gin.Context, ticker string, res *entity.QuoteResult) {
	data := gin.H{
		"Ticker": ticker,
		"Price":  "",
		"Source": "",
		"TTL":    int(h.uc.PositiveTTL().Seconds()),
	}
	if res != nil {
		data["Source"] = string(res.Source)
		if res.Price.Valid {
			data["Price"] = res.Price.Decimal.String()
		}
	}
	c.HTML(http.StatusOK, IndexTemplate, data)
}

func toFloat(p decimal.NullDecimal) *float64 {
	if !p.Valid {
		return nil
	}
	f := p.Decimal.InexactFloat64()
	return &f
}
