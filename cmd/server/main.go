package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stock_quote/internal/app/di"
	"stock_quote/internal/app/router"
	historyhandler "stock_quote/internal/feature/history/transport/handler"
	quotehandler "stock_quote/internal/feature/quote/transport/handler"
	"stock_quote/internal/platform/db"
	"stock_quote/internal/platform/http/handler"
	infraredis "stock_quote/internal/platform/redis"
)

func main() {
	// .envを読み込む（存在しなければ環境変数のみを使用）
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	// db
	gdb, err := db.OpenDB(db.LoadConfigFromEnv())
	if err != nil {
		log.Fatalf("failed to open log store: %v", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			slog.Error("failed to close log store", "error", err)
		}
	}()

	// Redis（停止中でもクライアントは保持し、各操作がミスとして縮退する）
	rdb := infraredis.NewClient(infraredis.LoadConfig())
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Warn("Redis unavailable at startup. Serving without cache until it recovers.", "error", err)
	}
	cancelPing()

	// Usecase
	quoteCache := di.NewQuoteCache(rdb)
	historyUC := di.NewHistoryUsecase(gdb)
	quoteUC := di.NewQuoteUsecase(quoteCache, historyUC)

	// Handler
	quoteH := quotehandler.NewQuoteHandler(quoteUC)
	historyH := historyhandler.NewHistoryHandler(historyUC)
	healthH := handler.NewHealthHandler(
		handler.Check{Name: "cache", Ping: quoteCache.Ping},
		handler.Check{Name: "log_store", Ping: func(ctx context.Context) error { return db.Ping(ctx, gdb) }},
	)

	// ルータ生成
	r := router.NewRouter(quoteH, historyH, healthH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", port, "positive_ttl", quoteUC.PositiveTTL().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
