package execution

import (
	"context"
	"log/slog"

	"auction_go/internal/domain"
)

// DryRunSubmitter logs qualifying bids instead of broadcasting them.
// Signing and broadcasting live outside this module; this is the default
// submitter until one is wired in.
type DryRunSubmitter struct{}

// Submit logs the bid and reports success.
func (DryRunSubmitter) Submit(_ context.Context, bid domain.Bid) error {
	slog.Info("DRY_RUN_BID",
		slog.Uint64("auction_id", uint64(bid.AuctionID)),
		slog.String("fee_token", bid.FeeToken.String()),
		slog.Uint64("maximum_usomm_in", bid.MaximumUsommIn),
		slog.Uint64("minimum_tokens_out", bid.MinimumTokensOut),
	)
	return nil
}
