package domain

import (
	"errors"
	"testing"
)

func TestValidateSommAddress(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		addr := "somm1qpzry9x8gf2tvdw0s3jn54khce6mua7lqqqqpq"
		if err := ValidateSommAddress(addr); err != nil {
			t.Errorf("Expected valid address, got %v", err)
		}
	})

	t.Run("Wrong Prefix", func(t *testing.T) {
		addr := "cosm1qpzry9x8gf2tvdw0s3jn54khce6mua7lqqqqpq"
		err := ValidateSommAddress(addr)
		if !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("Expected ErrInvalidAddress, got %v", err)
		}
	})

	t.Run("Wrong Length", func(t *testing.T) {
		if err := ValidateSommAddress("somm1short"); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("Expected ErrInvalidAddress, got %v", err)
		}
	})

	t.Run("Invalid Charset", func(t *testing.T) {
		// 'b' is not in the bech32 charset
		addr := "somm1bpzry9x8gf2tvdw0s3jn54khce6mua7lqqqqpq"
		if err := ValidateSommAddress(addr); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("Expected ErrInvalidAddress, got %v", err)
		}
	})
}

func TestStandingOrderRecord_ToOrder(t *testing.T) {
	t.Run("Valid Record", func(t *testing.T) {
		rec := StandingOrderRecord{
			ID:                 1,
			SaleDenom:          "uusdc",
			MaximumUsommIn:     500,
			MinimumUsdValueOut: 100,
			FeeToken:           "usomm",
		}

		order, err := rec.ToOrder()
		if err != nil {
			t.Fatalf("ToOrder failed: %v", err)
		}
		if order.SaleDenom != Denom("uusdc") || order.FeeToken != DenomUsomm {
			t.Errorf("Unexpected denoms: %+v", order)
		}
		if order.MaximumUsommIn != 500 || order.MinimumUsdValueOut != 100 {
			t.Errorf("Unexpected amounts: %+v", order)
		}
	})

	t.Run("Bad Denom Rejected", func(t *testing.T) {
		rec := StandingOrderRecord{ID: 2, SaleDenom: "!", FeeToken: "usomm"}
		if _, err := rec.ToOrder(); err == nil {
			t.Error("Expected error for malformed sale denom")
		}
	})
}
