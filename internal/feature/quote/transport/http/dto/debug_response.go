// Package dto defines the HTTP response shapes of the quote feature.
package dto

import "stock_quote/internal/feature/quote/domain/entity"

// DebugQuoteResponse はプロバイダーの生レスポンスを確認するためのDTOです。
type DebugQuoteResponse struct {
	Ticker      string            `json:"ticker"`       // 大文字に正規化したティッカー
	PriceParsed *float64          `json:"price_parsed"` // 解析した価格（失敗時はnull）
	RawPayload  entity.Diagnostic `json:"raw_payload"`  // プロバイダーの生ペイロード
}
