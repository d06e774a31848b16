package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction_go/internal/app"
	"auction_go/internal/cache"
	"auction_go/internal/domain"
	"auction_go/internal/engine"
	"auction_go/internal/execution"
	"auction_go/internal/infra/pricefeed"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := bootstrap.Config

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Auction Cache (refresh loop)
	auctionCache := cache.New(bootstrap.Source)
	go auctionCache.Run(ctx, time.Duration(cfg.Chain.RefreshIntervalSec)*time.Second)
	slog.Info("Auction cache refresh started", slog.Int("interval_sec", cfg.Chain.RefreshIntervalSec))

	// 4. Watcher (evaluation loop) + Dispatcher
	orderBook, err := bootstrap.OrderBook()
	if err != nil {
		slog.Error("Failed to load order book", slog.Any("error", err))
		os.Exit(1)
	}

	bids := make(chan domain.Bid, cfg.Engine.BidBuffer)
	watcher := engine.NewWatcher(auctionCache, orderBook, bids, time.Duration(cfg.Engine.EvaluateIntervalSec)*time.Second)

	dispatcher := execution.NewDispatcher(bids, execution.DryRunSubmitter{})
	go dispatcher.Run(ctx)
	go watcher.Run(ctx)

	// 5. Price Feed (USD values per denom)
	if len(cfg.PriceFeed.Products) > 0 {
		products, err := bootstrap.PriceFeedProducts()
		if err != nil {
			slog.Error("Failed to map price feed products", slog.Any("error", err))
			os.Exit(1)
		}
		feed := pricefeed.NewWorker(cfg.PriceFeed.WSURL, products, watcher.UpdatePrices)
		if err := feed.Connect(ctx); err != nil {
			slog.Error("Failed to start price feed", slog.Any("error", err))
		}
		defer feed.Disconnect()
		slog.Info("Price feed started", slog.Int("products", len(products)))
	}

	slog.Info("Auction watcher fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.Info("Shutting down gracefully...")
}
