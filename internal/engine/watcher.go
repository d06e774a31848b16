package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"auction_go/internal/cache"
	"auction_go/internal/domain"
	"auction_go/internal/infra"

	"github.com/shopspring/decimal"
)

// Watcher matches the standing order book against the cached auction set
// and the current price map on a fixed cadence, pushing qualifying bids
// onto the dispatch channel. The cache refresh loop runs separately; the
// watcher only reads snapshots.
//
// The order book and price map are single-owner inputs: UpdateOrders and
// UpdatePrices replace them wholesale under the lock, and each cycle copies
// the current handles up front, so a swap mid-cycle takes effect at the
// next cycle and a half-old/half-new view is impossible.
type Watcher struct {
	mu     sync.RWMutex
	orders domain.OrderBook
	prices map[domain.Denom]decimal.Decimal

	cache    *cache.Cache
	bids     chan<- domain.Bid
	interval time.Duration
}

// NewWatcher creates a watcher over the given cache. Orders may be nil and
// set later through UpdateOrders.
func NewWatcher(c *cache.Cache, orders domain.OrderBook, bids chan<- domain.Bid, interval time.Duration) *Watcher {
	if orders == nil {
		orders = make(domain.OrderBook)
	}
	return &Watcher{
		orders:   orders,
		prices:   make(map[domain.Denom]decimal.Decimal),
		cache:    c,
		bids:     bids,
		interval: interval,
	}
}

// UpdatePrices replaces the whole denom→USD map. Callers must hand over a
// map they no longer mutate; partial merges are deliberately unsupported.
func (w *Watcher) UpdatePrices(prices map[domain.Denom]decimal.Decimal) {
	if prices == nil {
		prices = make(map[domain.Denom]decimal.Decimal)
	}
	w.mu.Lock()
	w.prices = prices
	w.mu.Unlock()
}

// UpdateOrders replaces the whole order book.
func (w *Watcher) UpdateOrders(orders domain.OrderBook) {
	if orders == nil {
		orders = make(domain.OrderBook)
	}
	w.mu.Lock()
	w.orders = orders
	w.mu.Unlock()
}

// Run executes evaluation cycles until ctx is done. An evaluation cycle
// never terminates the loop; per-auction and per-order failures are
// isolated inside runCycle.
func (w *Watcher) Run(ctx context.Context) {
	slog.Info("Auction watcher started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.runCycle(ctx)

		select {
		case <-ctx.Done():
			slog.Info("Auction watcher stopped")
			return
		case <-ticker.C:
		}
	}
}

// runCycle scans the current auction snapshot against the order book.
func (w *Watcher) runCycle(ctx context.Context) {
	w.mu.RLock()
	orders := w.orders
	prices := w.prices
	w.mu.RUnlock()

	for _, auction := range w.cache.Snapshot() {
		saleDenom, err := auction.SaleDenom()
		if err != nil {
			w.skipAuction(err)
			continue
		}

		denomOrders := orders[saleDenom]
		if len(denomOrders) == 0 {
			continue
		}

		usdUnitValue, ok := prices[saleDenom]
		if !ok {
			// No price, no evaluation. Never assume a stale or
			// default price.
			slog.Debug("No USD price for denom, skipping orders",
				slog.String("denom", saleDenom.String()),
				slog.Uint64("auction_id", uint64(auction.ID)),
			)
			continue
		}

		for _, order := range denomOrders {
			bid, qualifies, err := EvaluateBid(order, usdUnitValue, auction)
			if err != nil {
				// Malformed price or amount poisons every
				// order on this auction; skip the lot.
				w.skipAuction(err)
				break
			}
			if !qualifies {
				continue
			}
			if !w.emit(ctx, bid) {
				return
			}
		}
	}

	infra.GlobalMetrics.RecordCycle()
}

func (w *Watcher) skipAuction(err error) {
	infra.GlobalMetrics.RecordAuctionSkipped()

	var malformed *domain.MalformedAuctionError
	if errors.As(err, &malformed) {
		slog.Warn("Skipping malformed auction",
			slog.Uint64("auction_id", uint64(malformed.AuctionID)),
			slog.String("field", malformed.Field),
			slog.Any("error", err),
		)
		return
	}
	slog.Warn("Skipping auction", slog.Any("error", err))
}

// emit pushes a bid to the dispatch channel, returning false if ctx was
// cancelled while the channel was full.
func (w *Watcher) emit(ctx context.Context, bid domain.Bid) bool {
	select {
	case <-ctx.Done():
		return false
	case w.bids <- bid:
		infra.GlobalMetrics.RecordBidEmitted()
		slog.Info("Bid qualifies",
			slog.Uint64("auction_id", uint64(bid.AuctionID)),
			slog.Uint64("maximum_usomm_in", bid.MaximumUsommIn),
			slog.Uint64("minimum_tokens_out", bid.MinimumTokensOut),
		)
		return true
	}
}
