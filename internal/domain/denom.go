package domain

import (
	"fmt"
	"strings"
)

// Denom is a validated on-chain token identifier (e.g. "usomm",
// "gravity0x...", "ibc/27394..."). Denoms key orders, prices and auction
// lots, so matching relies on their equality.
type Denom string

// DenomUsomm is the chain's native staking and auction settlement token.
const DenomUsomm = Denom("usomm")

const (
	minDenomLen = 3
	maxDenomLen = 128
)

// NewDenom validates a raw denom string. Denoms must start with a letter
// and may contain letters, digits and '/', ':', '.', '_', '-'.
func NewDenom(raw string) (Denom, error) {
	s := strings.TrimSpace(raw)
	if len(s) < minDenomLen || len(s) > maxDenomLen {
		return "", fmt.Errorf("%w: %q (length %d)", ErrInvalidDenom, raw, len(s))
	}
	if !isDenomLetter(s[0]) {
		return "", fmt.Errorf("%w: %q must start with a letter", ErrInvalidDenom, raw)
	}
	for i := 1; i < len(s); i++ {
		if !isDenomChar(s[i]) {
			return "", fmt.Errorf("%w: %q has invalid character %q", ErrInvalidDenom, raw, s[i])
		}
	}
	return Denom(s), nil
}

// MustDenom is a convenience for compile-time-known denoms. Panics on
// invalid input, so it belongs in tests and initialization only.
func MustDenom(raw string) Denom {
	d, err := NewDenom(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Denom) String() string {
	return string(d)
}

func isDenomLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDenomChar(c byte) bool {
	if isDenomLetter(c) || (c >= '0' && c <= '9') {
		return true
	}
	switch c {
	case '/', ':', '.', '_', '-':
		return true
	}
	return false
}
