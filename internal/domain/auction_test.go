package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testAuction() Auction {
	return Auction{
		ID:                      1,
		StartingTokensForSale:   Coin{Denom: "uusdc", Amount: "5000000000"},
		RemainingTokensForSale:  Coin{Denom: "uusdc", Amount: "1000"},
		CurrentUnitPriceInUsomm: "2.0",
		EndBlock:                123456,
	}
}

func TestAuction_SaleDenom(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		a := testAuction()
		d, err := a.SaleDenom()
		if err != nil {
			t.Fatalf("SaleDenom failed: %v", err)
		}
		if d != Denom("uusdc") {
			t.Errorf("Expected uusdc, got %q", d)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		a := testAuction()
		a.StartingTokensForSale.Denom = "!"
		_, err := a.SaleDenom()

		var malformed *MalformedAuctionError
		if !errors.As(err, &malformed) {
			t.Fatalf("Expected MalformedAuctionError, got %v", err)
		}
		if malformed.AuctionID != 1 {
			t.Errorf("Expected auction id 1, got %d", malformed.AuctionID)
		}
	})
}

func TestAuction_UnitPrice(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		a := testAuction()
		p, err := a.UnitPrice()
		if err != nil {
			t.Fatalf("UnitPrice failed: %v", err)
		}
		if !p.Equal(decimal.NewFromInt(2)) {
			t.Errorf("Expected 2, got %v", p)
		}
	})

	t.Run("Unparseable", func(t *testing.T) {
		a := testAuction()
		a.CurrentUnitPriceInUsomm = "not-a-number"
		if _, err := a.UnitPrice(); err == nil {
			t.Error("Expected error for unparseable price")
		}
	})

	t.Run("Zero Rejected", func(t *testing.T) {
		// A zero price would divide by zero in the evaluator.
		a := testAuction()
		a.CurrentUnitPriceInUsomm = "0"
		if _, err := a.UnitPrice(); err == nil {
			t.Error("Expected error for zero price")
		}
	})
}

func TestAuction_RemainingAmount(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		a := testAuction()
		n, err := a.RemainingAmount()
		if err != nil {
			t.Fatalf("RemainingAmount failed: %v", err)
		}
		if n != 1000 {
			t.Errorf("Expected 1000, got %d", n)
		}
	})

	t.Run("Negative Rejected", func(t *testing.T) {
		a := testAuction()
		a.RemainingTokensForSale.Amount = "-5"
		if _, err := a.RemainingAmount(); err == nil {
			t.Error("Expected error for negative amount")
		}
	})
}
