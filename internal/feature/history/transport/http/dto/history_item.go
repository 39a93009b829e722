// Package dto defines the HTTP response shapes of the history feature.
package dto

// HistoryItem は検索履歴1行のレスポンスDTOです。
type HistoryItem struct {
	Ticker     string   `json:"ticker"`      // ティッカー
	Price      *float64 `json:"price"`       // 価格（取得失敗時はnull）
	Source     string   `json:"source"`      // "cache" または "api"
	SearchedAt string   `json:"searched_at"` // 検索日時（ISO-8601, UTC）
}
