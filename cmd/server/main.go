package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/deniscmrg/investia-api/internal/auth"
	"github.com/deniscmrg/investia-api/internal/execution"
	"github.com/deniscmrg/investia-api/internal/gateway"
	"github.com/deniscmrg/investia-api/internal/ingestion"
	redisrepo "github.com/deniscmrg/investia-api/internal/repository/redis"
	"github.com/deniscmrg/investia-api/internal/terminal"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	bridgeURL := os.Getenv("BRIDGE_URL")
	bridgeWSURL := os.Getenv("BRIDGE_WS_URL")
	redisURL := os.Getenv("REDIS_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	passwordHash := os.Getenv("OPERATOR_PASSWORD_HASH")
	streamSymbols := os.Getenv("STREAM_SYMBOLS")
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if bridgeURL == "" {
		bridgeURL = "http://localhost:5001"
	}
	if bridgeWSURL == "" {
		bridgeWSURL = "ws://localhost:5001/stream"
	}

	bridge := terminal.NewBridgeClient(bridgeURL, 10*time.Second)

	redisClient, err := redisrepo.Connect(redisURL)
	if err != nil {
		logger.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	logger.Info("redis connected")

	tickRepo := redisrepo.NewTickRepo(redisClient)

	jwtSvc := auth.NewJWTService(jwtSecret, 24*time.Hour)
	orderSvc := execution.NewOrderService(bridge)

	hub := gateway.NewHub(tickRepo, logger)

	var symbols []string
	for _, s := range strings.Split(streamSymbols, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	stream := ingestion.NewStreamClient(bridgeWSURL, symbols, tickRepo, logger)

	handlers := gateway.NewHandlers(bridge, orderSvc, jwtSvc, passwordHash, logger)
	router := gateway.NewRouter(handlers, hub, jwtSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go hub.Run(ctx)
	if len(symbols) > 0 {
		go stream.Run(ctx)
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", port, "bridge", bridgeURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
