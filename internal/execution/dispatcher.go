package execution

import (
	"context"
	"log/slog"
	"time"

	"auction_go/internal/domain"
	"auction_go/internal/infra"
)

const submitAttempts = 3

// Dispatcher drains the bid channel and forwards each bid to the
// submitter. Retriable submission failures are retried with backoff; a bid
// that still fails is dropped with an error log rather than blocking the
// channel.
type Dispatcher struct {
	bids      <-chan domain.Bid
	submitter domain.BidSubmitter
}

// NewDispatcher creates a dispatcher over the given channel and submitter.
func NewDispatcher(bids <-chan domain.Bid, submitter domain.BidSubmitter) *Dispatcher {
	return &Dispatcher{
		bids:      bids,
		submitter: submitter,
	}
}

// Run forwards bids until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) {
	slog.Info("Bid dispatcher started")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Bid dispatcher stopped")
			return
		case bid := <-d.bids:
			d.dispatch(ctx, bid)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, bid domain.Bid) {
	var lastErr error
	for attempt := 0; attempt < submitAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(infra.CalculateBackoff(attempt - 1)):
			}
		}

		err := d.submitter.Submit(ctx, bid)
		if err == nil {
			infra.GlobalMetrics.RecordBidSubmitted()
			return
		}
		lastErr = err
		if !domain.IsRetriable(err) {
			break
		}
		slog.Warn("Bid submission failed, retrying",
			slog.Uint64("auction_id", uint64(bid.AuctionID)),
			slog.Int("attempt", attempt+1),
			slog.Any("error", err),
		)
	}

	infra.GlobalMetrics.RecordError()
	slog.Error("Dropping bid after failed submission",
		slog.Uint64("auction_id", uint64(bid.AuctionID)),
		slog.Any("error", lastErr),
	)
}
