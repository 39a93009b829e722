// Command lookup prints the price of one or more tickers using the same
// cache and provider as the server, without recording search history.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_quote/internal/app/di"
	"stock_quote/internal/feature/quote/domain/entity"
	infraredis "stock_quote/internal/platform/redis"
)

func main() {
	noCache := flag.Bool("no-cache", false, "skip Redis and always call the provider")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: lookup [-no-cache] TICKER...")
	}

	_ = godotenv.Load(".env")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var rdb *redisv9.Client
	if !*noCache {
		if tmp, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig()); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	uc := di.NewQuoteUsecase(di.NewQuoteCache(rdb), nil)

	enc := json.NewEncoder(os.Stdout)
	results := make([]entity.QuoteResult, 0, flag.NArg())
	for _, t := range flag.Args() {
		results = append(results, uc.GetQuote(ctx, t))
	}
	if err := enc.Encode(results); err != nil {
		log.Fatal(err)
	}
}
