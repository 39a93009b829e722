package cache

import (
	"os"
	"strconv"
	"time"

	"stock_quote/internal/feature/quote/usecase"
)

// Config holds cache tuning loaded from the environment.
type Config struct {
	PositiveTTL time.Duration // How long successful quotes stay cached
}

// LoadConfig は環境変数 CACHE_TTL_SECONDS から設定を読み込みます。
// 未設定・不正値・0以下の場合は usecase.DefaultPositiveTTL を使用します。
func LoadConfig() Config {
	ttl := usecase.DefaultPositiveTTL
	if s := os.Getenv("CACHE_TTL_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Second
		}
	}
	return Config{PositiveTTL: ttl}
}
