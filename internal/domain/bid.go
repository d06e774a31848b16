package domain

// Bid is the computed artifact of one (auction, order, price) triple. It is
// handed to the dispatch channel for a separate submission component to sign
// and broadcast, and is never persisted.
type Bid struct {
	AuctionID        uint32
	FeeToken         Denom
	MaximumUsommIn   uint64
	MinimumTokensOut uint64
}
