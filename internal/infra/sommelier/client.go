package sommelier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"auction_go/internal/domain"
)

const activeAuctionsPath = "/sommelier/auction/v1/active_auctions"

// coinJSON mirrors the LCD coin encoding.
type coinJSON struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// auctionJSON mirrors the LCD auction encoding. The LCD renders integers as
// strings.
type auctionJSON struct {
	ID                         string   `json:"id"`
	StartingTokensForSale      coinJSON `json:"starting_tokens_for_sale"`
	StartBlock                 string   `json:"start_block"`
	EndBlock                   string   `json:"end_block"`
	InitialPriceDecreaseRate   string   `json:"initial_price_decrease_rate"`
	CurrentPriceDecreaseRate   string   `json:"current_price_decrease_rate"`
	PriceDecreaseBlockInterval string   `json:"price_decrease_block_interval"`
	InitialUnitPriceInUsomm    string   `json:"initial_unit_price_in_usomm"`
	CurrentUnitPriceInUsomm    string   `json:"current_unit_price_in_usomm"`
	RemainingTokensForSale     coinJSON `json:"remaining_tokens_for_sale"`
	FundingModuleAccount       string   `json:"funding_module_account"`
	ProceedsModuleAccount      string   `json:"proceeds_module_account"`
}

type activeAuctionsResponse struct {
	Auctions []auctionJSON `json:"auctions"`
}

// Client queries the chain's LCD API for active auctions. It implements
// domain.AuctionSource. Transient failures are reported as retriable
// SourceErrors; the cache's refresh loop is the retry mechanism, so no
// in-call retry is performed.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an LCD client for the given base URL. The request
// timeout bounds a hung query to one failed cycle instead of a stalled
// loop.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ActiveAuctions returns the full current set of active auctions. An
// auction record that cannot be converted is skipped with a warning rather
// than failing the whole refresh.
func (c *Client) ActiveAuctions(ctx context.Context) ([]domain.Auction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+activeAuctionsPath, nil)
	if err != nil {
		return nil, domain.NewFatalSourceError("active_auctions", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewSourceError("active_auctions", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewSourceError("active_auctions", fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewSourceError("active_auctions", err)
	}

	var data activeAuctionsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, domain.NewSourceError("active_auctions", err)
	}

	auctions := make([]domain.Auction, 0, len(data.Auctions))
	for _, aj := range data.Auctions {
		auction, err := aj.toDomain()
		if err != nil {
			slog.Warn("Skipping unconvertible auction record",
				slog.String("id", aj.ID),
				slog.Any("error", err),
			)
			continue
		}
		auctions = append(auctions, auction)
	}

	return auctions, nil
}

func (aj *auctionJSON) toDomain() (domain.Auction, error) {
	id, err := strconv.ParseUint(aj.ID, 10, 32)
	if err != nil {
		return domain.Auction{}, fmt.Errorf("bad auction id %q: %w", aj.ID, err)
	}

	// Block heights are optional in older responses; treat absent as zero.
	startBlock := parseUintOrZero(aj.StartBlock)
	endBlock := parseUintOrZero(aj.EndBlock)
	decreaseInterval := parseUintOrZero(aj.PriceDecreaseBlockInterval)

	return domain.Auction{
		ID:                         uint32(id),
		StartingTokensForSale:      domain.Coin{Denom: aj.StartingTokensForSale.Denom, Amount: aj.StartingTokensForSale.Amount},
		StartBlock:                 startBlock,
		EndBlock:                   endBlock,
		InitialPriceDecreaseRate:   aj.InitialPriceDecreaseRate,
		CurrentPriceDecreaseRate:   aj.CurrentPriceDecreaseRate,
		PriceDecreaseBlockInterval: decreaseInterval,
		InitialUnitPriceInUsomm:    aj.InitialUnitPriceInUsomm,
		CurrentUnitPriceInUsomm:    aj.CurrentUnitPriceInUsomm,
		RemainingTokensForSale:     domain.Coin{Denom: aj.RemainingTokensForSale.Denom, Amount: aj.RemainingTokensForSale.Amount},
		FundingModuleAccount:       aj.FundingModuleAccount,
		ProceedsModuleAccount:      aj.ProceedsModuleAccount,
	}, nil
}

func parseUintOrZero(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
