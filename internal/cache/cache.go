package cache

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"auction_go/internal/domain"
	"auction_go/internal/infra"
)

// Cache owns the most recently observed state of every active auction.
// One background task overwrites it on a fixed interval while any number of
// readers take snapshots concurrently. A reader always sees a whole
// pre-refresh or whole post-refresh state, never a mix: Refresh builds the
// next map off to the side and swaps it in under the write lock.
type Cache struct {
	mu       sync.RWMutex
	auctions map[uint32]domain.Auction
	source   domain.AuctionSource
}

// New creates a cache backed by the given source. The source client must be
// constructed and ready before the cache is built; there is no lazy
// first-use initialization.
func New(source domain.AuctionSource) *Cache {
	return &Cache{
		auctions: make(map[uint32]domain.Auction),
		source:   source,
	}
}

// Refresh queries the source for the full current set of active auctions
// and replaces the cached mapping with it. Lots absent from the response
// are pruned, so readers never see ended or sold-out auctions after a
// successful refresh. On failure the previous contents are retained
// untouched and a retriable SourceError is returned.
func (c *Cache) Refresh(ctx context.Context) error {
	auctions, err := c.source.ActiveAuctions(ctx)
	if err != nil {
		infra.GlobalMetrics.RecordRefreshFailure()
		var re domain.RetriableError
		if errors.As(err, &re) {
			return err
		}
		return domain.NewSourceError("active_auctions", err)
	}

	next := make(map[uint32]domain.Auction, len(auctions))
	for _, a := range auctions {
		next[a.ID] = a
	}

	c.mu.Lock()
	c.auctions = next
	c.mu.Unlock()

	infra.GlobalMetrics.RecordRefresh()
	infra.GlobalMetrics.SetActiveAuctions(int32(len(next)))
	return nil
}

// Snapshot returns a point-in-time copy of all cached auctions, sorted by
// id for stable iteration.
func (c *Cache) Snapshot() []domain.Auction {
	c.mu.RLock()
	result := make([]domain.Auction, 0, len(c.auctions))
	for _, a := range c.auctions {
		result = append(result, a)
	}
	c.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns one cached auction by id.
func (c *Cache) Get(id uint32) (domain.Auction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.auctions[id]
	return a, ok
}

// Len returns the number of cached auctions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.auctions)
}

// Run refreshes the cache on the given interval until ctx is done. The
// first refresh happens immediately. A failed refresh is logged and the
// next tick retries; it never terminates the loop.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	if err := c.Refresh(ctx); err != nil {
		slog.Warn("Initial auction refresh failed", slog.Any("error", err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Auction cache refresh stopped")
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				slog.Warn("Auction refresh failed", slog.Any("error", err))
			}
		}
	}
}
