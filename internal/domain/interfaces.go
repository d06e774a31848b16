package domain

import "context"

// AuctionSource queries the chain for the full current set of active
// auctions. It may be slow or fail; callers treat failures per the
// SourceError taxonomy.
type AuctionSource interface {
	ActiveAuctions(ctx context.Context) ([]Auction, error)
}

// BidSubmitter hands a finalized bid to the submission layer. This core
// never constructs or broadcasts a chain transaction itself.
type BidSubmitter interface {
	Submit(ctx context.Context, bid Bid) error
}

// PriceFeed defines the interface for USD price stream workers
type PriceFeed interface {
	Connect(ctx context.Context) error
	Disconnect()
	IsConnected() bool
}
