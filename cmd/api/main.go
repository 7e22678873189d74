package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmarinho/orderdesk/internal/config"
	"github.com/dmarinho/orderdesk/internal/database"
	"github.com/dmarinho/orderdesk/internal/feed"
	orderdeskHttp "github.com/dmarinho/orderdesk/internal/http"
	ingestHandler "github.com/dmarinho/orderdesk/internal/http/ingest"
	orderHandler "github.com/dmarinho/orderdesk/internal/http/order"
	reportHandler "github.com/dmarinho/orderdesk/internal/http/report"
	"github.com/dmarinho/orderdesk/internal/ingest"
	"github.com/dmarinho/orderdesk/internal/order"
	orderStore "github.com/dmarinho/orderdesk/internal/order/store"
	"github.com/dmarinho/orderdesk/internal/partner"
	partnerStore "github.com/dmarinho/orderdesk/internal/partner/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		orderService     = order.NewService(orderStore.New(db))
		partnerDirectory = partner.NewDirectory(partnerStore.New(db))
		ingestService    = ingest.NewService()
		feedService      = feed.NewService(orderService, partnerDirectory, cfg.Feed.URL, cfg.Feed.Token)
	)

	var (
		ordersH  = orderHandler.NewHandler(orderService)
		reportsH = reportHandler.NewHandler(orderService, partnerDirectory)
		ingestH  = ingestHandler.NewHandler(ingestService, orderService, partnerDirectory, feedService)
	)

	router := orderdeskHttp.New([]byte(cfg.Auth.JWTSecret), ordersH, reportsH, ingestH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
