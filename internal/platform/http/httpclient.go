// Package http provides the outbound HTTP client used for quote providers.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API呼び出し用のHTTPクライアントを作成します。
//
// timeout はリクエスト全体（接続・ヘッダー待ち・ボディ読み込み）の上限です。
// http.DefaultClient にはタイムアウトがないため使用しないこと。
// リトライは行いません（1リクエスト1試行）。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
