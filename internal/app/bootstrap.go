package app

import (
	"log/slog"

	"auction_go/internal/domain"
	"auction_go/internal/infra"
	"auction_go/internal/infra/sommelier"
	"auction_go/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence. Everything
// fallible is constructed here, up front: by the time the loops start there
// is no lazy first-use initialization left to fail.
type Bootstrap struct {
	Config  *infra.Config
	Storage *storage.Storage
	Source  *sommelier.Client
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, DB,
// source client).
func (b *Bootstrap) Initialize(configPath string) error {
	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)
	slog.Info("Bootstrapping auction watcher",
		slog.String("name", cfg.App.Name),
		slog.String("version", cfg.App.Version),
	)

	// 3. Initialize Storage (DB)
	if cfg.Storage.Enabled {
		store, err := storage.NewStorage(cfg.Storage.Path)
		if err != nil {
			return err
		}
		b.Storage = store
		slog.Info("Database initialized")
	}

	// 4. Construct the auction source client
	b.Source = sommelier.NewClient(cfg.Chain.LCDURL)
	slog.Info("Auction source ready", slog.String("lcd_url", cfg.Chain.LCDURL))

	return nil
}

// OrderBook merges config-declared orders with persisted standing orders.
func (b *Bootstrap) OrderBook() (domain.OrderBook, error) {
	book, err := b.Config.OrderBook()
	if err != nil {
		return nil, err
	}

	if b.Storage != nil {
		stored, err := b.Storage.LoadOrderBook()
		if err != nil {
			return nil, err
		}
		for denom, orders := range stored {
			book[denom] = append(book[denom], orders...)
		}
	}

	total := 0
	for _, orders := range book {
		total += len(orders)
	}
	slog.Info("Order book loaded", slog.Int("denoms", len(book)), slog.Int("orders", total))

	return book, nil
}

// PriceFeedProducts converts the configured product mapping into validated
// denoms. Validate already vetted them, so failures here are impossible in
// a loaded config.
func (b *Bootstrap) PriceFeedProducts() (map[string]domain.Denom, error) {
	products := make(map[string]domain.Denom, len(b.Config.PriceFeed.Products))
	for product, raw := range b.Config.PriceFeed.Products {
		denom, err := domain.NewDenom(raw)
		if err != nil {
			return nil, err
		}
		products[product] = denom
	}
	return products, nil
}
