package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/shopspring/decimal"

	"stock_quote/internal/feature/quote/domain/entity"
	"stock_quote/internal/feature/quote/usecase"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// quoteKeys are the spellings under which the quote object has been seen.
var quoteKeys = []string{"Global Quote", "GlobalQuote"}

// priceKey holds the latest price as a string inside the quote object.
const priceKey = "05. price"

// Client はAlpha Vantage外部APIから最新株価を取得するPriceProvider実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがPriceProviderを実装していることをコンパイル時に検証します。
var _ usecase.PriceProvider = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// FetchPrice はティッカーの最新価格を取得します。
// 価格が得られない場合はnullと診断ペイロードを返し、エラーやpanicは発生しません。
func (c *Client) FetchPrice(ctx context.Context, ticker string) (decimal.NullDecimal, entity.Diagnostic) {
	return collapse(c.Fetch(ctx, ticker))
}

// Fetch performs a single GLOBAL_QUOTE request and classifies the answer.
func (c *Client) Fetch(ctx context.Context, ticker string) Outcome {
	if c.cfg.APIKey == "" {
		return ConfigMissing{}
	}

	body, err := c.get(ctx, entity.NormalizeTicker(ticker))
	if err != nil {
		return Unavailable{Detail: fmt.Sprintf("%T: %v", err, err)}
	}
	return parseGlobalQuote(body)
}

// get issues the HTTP request and returns a body that is known to be valid JSON.
func (c *Client) get(ctx context.Context, symbol string) ([]byte, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	// クエリパラメータを追加
	q := u.Query()
	q.Set("function", FunctionGlobalQuote)
	q.Set("symbol", symbol)
	q.Set("apikey", c.cfg.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, c.redact(err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, &StatusError{Code: res.StatusCode, Status: res.Status}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, c.redact(err)
	}
	var probe json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, err
	}
	return body, nil
}

// redact keeps the API key out of diagnostics by dropping the query string from URL errors.
func (c *Client) redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = c.cfg.BaseURL
	}
	return err
}

// parseGlobalQuote extracts "05. price" from the quote object of body.
// Falsy documents (null, {}, [] ...) are reported as "{}".
func parseGlobalQuote(body []byte) Outcome {
	raw := entity.Diagnostic(body)
	if v, t, _, err := jsonparser.Get(body); err != nil || entity.Falsy(v, t) {
		raw = entity.Diagnostic("{}")
	}

	gq, ok := quoteObject(raw)
	if !ok {
		return SchemaMismatch{Raw: raw}
	}
	price, ok := parsePrice(gq)
	if !ok {
		return SchemaMismatch{Raw: raw}
	}
	return Success{Price: price, Raw: raw}
}

// quoteObject returns the first truthy value among quoteKeys, provided it is an object.
func quoteObject(data []byte) ([]byte, bool) {
	for _, k := range quoteKeys {
		v, t, _, err := jsonparser.Get(data, k)
		if err != nil || entity.Falsy(v, t) {
			continue
		}
		return v, t == jsonparser.Object
	}
	return nil, false
}

// parsePrice parses the price field; missing, empty or non-numeric values yield false.
func parsePrice(gq []byte) (decimal.Decimal, bool) {
	v, t, _, err := jsonparser.Get(gq, priceKey)
	if err != nil {
		return decimal.Decimal{}, false
	}

	var s string
	switch t {
	case jsonparser.String:
		if s, err = jsonparser.ParseString(v); err != nil {
			return decimal.Decimal{}, false
		}
	case jsonparser.Number:
		s = string(v)
	default:
		return decimal.Decimal{}, false
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
