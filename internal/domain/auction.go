package domain

import (
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
)

// Coin is a denom/amount pair as the chain reports it. Amount stays a
// string until a consumer parses it; chain integers can exceed what a JSON
// number carries safely.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// Auction represents one active Dutch-auction lot at the most recently
// observed instant. The unit price decreases over blocks until the lot is
// sold out or the end block is reached. Records are replaced whole on each
// cache refresh, never field-merged.
type Auction struct {
	ID                         uint32 `json:"id"`
	StartingTokensForSale      Coin   `json:"starting_tokens_for_sale"`
	StartBlock                 uint64 `json:"start_block"`
	EndBlock                   uint64 `json:"end_block"`
	InitialPriceDecreaseRate   string `json:"initial_price_decrease_rate"`
	CurrentPriceDecreaseRate   string `json:"current_price_decrease_rate"`
	PriceDecreaseBlockInterval uint64 `json:"price_decrease_block_interval"`
	InitialUnitPriceInUsomm    string `json:"initial_unit_price_in_usomm"`
	CurrentUnitPriceInUsomm    string `json:"current_unit_price_in_usomm"`
	RemainingTokensForSale     Coin   `json:"remaining_tokens_for_sale"`
	FundingModuleAccount       string `json:"funding_module_account"`
	ProceedsModuleAccount      string `json:"proceeds_module_account"`
}

// SaleDenom parses the denom of the lot being sold. Orders match against
// this value.
func (a *Auction) SaleDenom() (Denom, error) {
	d, err := NewDenom(a.StartingTokensForSale.Denom)
	if err != nil {
		return "", &MalformedAuctionError{AuctionID: a.ID, Field: "starting_tokens_for_sale.denom", Err: err}
	}
	return d, nil
}

// UnitPrice parses the current usomm price per base unit of the sale token.
func (a *Auction) UnitPrice() (decimal.Decimal, error) {
	p, err := decimal.NewFromString(a.CurrentUnitPriceInUsomm)
	if err != nil {
		return decimal.Zero, &MalformedAuctionError{AuctionID: a.ID, Field: "current_unit_price_in_usomm", Err: err}
	}
	if !p.IsPositive() {
		return decimal.Zero, &MalformedAuctionError{
			AuctionID: a.ID,
			Field:     "current_unit_price_in_usomm",
			Err:       errors.New("unit price must be positive"),
		}
	}
	return p, nil
}

// RemainingAmount parses the unsold token count in base units.
func (a *Auction) RemainingAmount() (uint64, error) {
	n, err := strconv.ParseUint(a.RemainingTokensForSale.Amount, 10, 64)
	if err != nil {
		return 0, &MalformedAuctionError{AuctionID: a.ID, Field: "remaining_tokens_for_sale.amount", Err: err}
	}
	return n, nil
}
