package engine

import (
	"auction_go/internal/domain"

	"github.com/shopspring/decimal"
)

// EvaluateBid decides whether order justifies a bid on auction given the
// current USD value per base unit of the auctioned denom. It is pure: no
// shared state is read or mutated.
//
// The affordable token count is floored, never rounded up, so the offer can
// never spend more than the order's MaximumUsommIn; it is then clamped to
// the auction's remaining amount. The USD boundary is inclusive: a realized
// value exactly equal to MinimumUsdValueOut qualifies.
//
// The check is USD-value-only. It does not bound the implied usomm exchange
// rate, so a qualifying bid is not necessarily profitable measured in
// usomm. That is the intended matching policy, not an oversight.
func EvaluateBid(order domain.Order, usdUnitValue decimal.Decimal, auction domain.Auction) (domain.Bid, bool, error) {
	unitPrice, err := auction.UnitPrice()
	if err != nil {
		return domain.Bid{}, false, err
	}
	remaining, err := auction.RemainingAmount()
	if err != nil {
		return domain.Bid{}, false, err
	}

	maxAffordable := decimal.NewFromUint64(order.MaximumUsommIn).Div(unitPrice).Floor()

	tokensObtainable := maxAffordable
	remainingDec := decimal.NewFromUint64(remaining)
	if tokensObtainable.GreaterThan(remainingDec) {
		tokensObtainable = remainingDec
	}

	usdValueOut := tokensObtainable.Mul(usdUnitValue)
	if decimal.NewFromUint64(order.MinimumUsdValueOut).GreaterThan(usdValueOut) {
		return domain.Bid{}, false, nil
	}

	return domain.Bid{
		AuctionID:        auction.ID,
		FeeToken:         order.FeeToken,
		MaximumUsommIn:   order.MaximumUsommIn,
		MinimumTokensOut: tokensObtainable.BigInt().Uint64(),
	}, true, nil
}
