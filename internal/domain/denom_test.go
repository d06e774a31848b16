package domain

import (
	"errors"
	"testing"
)

func TestNewDenom(t *testing.T) {
	t.Run("Valid Denoms", func(t *testing.T) {
		for _, raw := range []string{
			"usomm",
			"uusdc",
			"gravity0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			"ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2",
			"factory/somm1abc/subdenom",
		} {
			if _, err := NewDenom(raw); err != nil {
				t.Errorf("Expected %q to be valid, got %v", raw, err)
			}
		}
	})

	t.Run("Invalid Denoms", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"ab",
			"1usomm",
			"usomm!",
			"u somm",
		} {
			_, err := NewDenom(raw)
			if err == nil {
				t.Errorf("Expected %q to be invalid", raw)
			}
			if !errors.Is(err, ErrInvalidDenom) {
				t.Errorf("Expected ErrInvalidDenom for %q, got %v", raw, err)
			}
		}
	})

	t.Run("Whitespace Trimmed", func(t *testing.T) {
		d, err := NewDenom("  usomm  ")
		if err != nil {
			t.Fatalf("NewDenom failed: %v", err)
		}
		if d != DenomUsomm {
			t.Errorf("Expected usomm, got %q", d)
		}
	})
}

func TestMustDenom(t *testing.T) {
	t.Run("Panics On Invalid", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic for invalid denom")
			}
		}()
		MustDenom("!")
	})
}
