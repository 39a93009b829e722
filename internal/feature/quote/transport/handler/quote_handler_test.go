package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"stock_quote/internal/feature/quote/domain/entity"
	"stock_quote/internal/feature/quote/transport/handler"
)

// mockQuoteUsecase はQuoteUsecaseインターフェースのモック実装です。
type mockQuoteUsecase struct {
	LookupFunc  func(ctx context.Context, ticker string) entity.QuoteResult
	DebugFunc   func(ctx context.Context, ticker string) (string, decimal.NullDecimal, entity.Diagnostic)
	LookupCalls []string
}

func (m *mockQuoteUsecase) Lookup(ctx context.Context, ticker string) entity.QuoteResult {
	m.LookupCalls = append(m.LookupCalls, ticker)
	return m.LookupFunc(ctx, ticker)
}

func (m *mockQuoteUsecase) Debug(ctx context.Context, ticker string) (string, decimal.NullDecimal, entity.Diagnostic) {
	return m.DebugFunc(ctx, ticker)
}

func (m *mockQuoteUsecase) PositiveTTL() time.Duration {
	return 120 * time.Second
}

func setupRouter(uc handler.QuoteUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := handler.NewQuoteHandler(uc)
	r := gin.New()
	r.SetHTMLTemplate(handler.Templates())
	r.GET("/", h.FormPage)
	r.POST("/quote", h.PostQuote)
	r.GET("/debug/quote", h.DebugQuote)
	return r
}

func found(p string) func(ctx context.Context, t string) entity.QuoteResult {
	return func(ctx context.Context, t string) entity.QuoteResult {
		return entity.QuoteResult{
			Ticker: entity.NormalizeTicker(t),
			Price:  decimal.NewNullDecimal(decimal.RequireFromString(p)),
			Source: entity.SourceAPI,
		}
	}
}

// TestQuoteHandler_FormPage はフォームページの表示と検索結果の埋め込みを検証します。
func TestQuoteHandler_FormPage(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		lookup      func(ctx context.Context, ticker string) entity.QuoteResult
		wantLookups []string
		contains    []string
		notContains []string
	}{
		{
			name:        "no ticker renders the empty form",
			url:         "/",
			contains:    []string{"<form", "cached for 120 seconds"},
			notContains: []string{`id="result"`},
		},
		{
			name:        "ticker query performs a lookup",
			url:         "/?ticker=tsla",
			lookup:      found("250.10"),
			wantLookups: []string{"tsla"},
			contains:    []string{`id="result"`, `<strong id="price">250.1</strong>`, `<span id="source">api</span>`},
		},
		{
			name: "failed lookup renders a blank price",
			url:  "/?ticker=ZZZZ",
			lookup: func(ctx context.Context, ticker string) entity.QuoteResult {
				return entity.QuoteResult{Ticker: "ZZZZ", Source: entity.SourceCache}
			},
			wantLookups: []string{"ZZZZ"},
			contains:    []string{`<strong id="price"></strong>`, `<span id="source">cache</span>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockQuoteUsecase{LookupFunc: tt.lookup}
			router := setupRouter(uc)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantLookups, uc.LookupCalls)
			for _, s := range tt.contains {
				assert.Contains(t, w.Body.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, w.Body.String(), s)
			}
		})
	}
}

// TestQuoteHandler_PostQuote はフォーム送信時の検索と必須チェックを検証します。
func TestQuoteHandler_PostQuote(t *testing.T) {
	tests := []struct {
		name           string
		form           url.Values
		expectedStatus int
		wantLookups    []string
		contains       string
	}{
		{
			name:           "success",
			form:           url.Values{"ticker": {"aapl"}},
			expectedStatus: http.StatusOK,
			wantLookups:    []string{"aapl"},
			contains:       `<strong id="price">189.98</strong>`,
		},
		{
			name:           "error: missing ticker",
			form:           url.Values{},
			expectedStatus: http.StatusUnprocessableEntity,
			contains:       `ticker is required`,
		},
		{
			name:           "error: blank ticker",
			form:           url.Values{"ticker": {"  "}},
			expectedStatus: http.StatusUnprocessableEntity,
			contains:       `ticker is required`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockQuoteUsecase{LookupFunc: found("189.98")}
			router := setupRouter(uc)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/quote", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantLookups, uc.LookupCalls)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

// TestQuoteHandler_DebugQuote はデバッグエンドポイントのレスポンスを検証します。
func TestQuoteHandler_DebugQuote(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		debug          func(ctx context.Context, ticker string) (string, decimal.NullDecimal, entity.Diagnostic)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: parsed price and raw payload",
			url:  "/debug/quote?ticker=aapl",
			debug: func(ctx context.Context, ticker string) (string, decimal.NullDecimal, entity.Diagnostic) {
				assert.Equal(t, "aapl", ticker)
				return "AAPL", decimal.NewNullDecimal(decimal.RequireFromString("189.98")),
					entity.Diagnostic(`{"Global Quote":{"05. price":"189.9800"}}`)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ticker":"AAPL","price_parsed":189.98,"raw_payload":{"Global Quote":{"05. price":"189.9800"}}}`,
		},
		{
			name: "success: missing api key diagnostic",
			url:  "/debug/quote?ticker=AAPL",
			debug: func(ctx context.Context, ticker string) (string, decimal.NullDecimal, entity.Diagnostic) {
				return "AAPL", decimal.NullDecimal{}, entity.NewErrorDiagnostic(entity.DiagnosticMissingAPIKey, "")
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ticker":"AAPL","price_parsed":null,"raw_payload":{"error":"missing_api_key"}}`,
		},
		{
			name:           "error: missing ticker",
			url:            "/debug/quote",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error":"ticker is required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&mockQuoteUsecase{DebugFunc: tt.debug})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
