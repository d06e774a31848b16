package domain

import (
	"fmt"
	"strings"
	"time"
)

// UserWallet maps a chat user to the somm address their bids settle to.
// The chat transport itself lives outside this module; this is its storage
// boundary.
type UserWallet struct {
	UserID      int64     `gorm:"primaryKey" json:"user_id"`
	SommAddress string    `gorm:"uniqueIndex" json:"somm_address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StandingOrderRecord persists a standing order across restarts. Denoms are
// stored raw and re-validated on load so a bad row cannot poison the order
// book.
type StandingOrderRecord struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	SaleDenom          string    `gorm:"index" json:"sale_denom"`
	MaximumUsommIn     uint64    `json:"maximum_usomm_in"`
	MinimumUsdValueOut uint64    `json:"minimum_usd_value_out"`
	FeeToken           string    `json:"fee_token"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToOrder converts a persisted record into a validated Order.
func (r *StandingOrderRecord) ToOrder() (Order, error) {
	saleDenom, err := NewDenom(r.SaleDenom)
	if err != nil {
		return Order{}, fmt.Errorf("order %d: %w", r.ID, err)
	}
	feeToken, err := NewDenom(r.FeeToken)
	if err != nil {
		return Order{}, fmt.Errorf("order %d: %w", r.ID, err)
	}
	return Order{
		SaleDenom:          saleDenom,
		MaximumUsommIn:     r.MaximumUsommIn,
		MinimumUsdValueOut: r.MinimumUsdValueOut,
		FeeToken:           feeToken,
	}, nil
}

const (
	sommAddressPrefix = "somm1"
	sommAddressLen    = 43 // "somm" + separator + 38 data chars
	bech32Charset     = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
)

// ValidateSommAddress checks the shape of a bech32 somm account address.
// It does not verify the checksum; the submission layer rejects bad
// checksums on broadcast.
func ValidateSommAddress(addr string) error {
	if len(addr) != sommAddressLen {
		return fmt.Errorf("%w: %q (length %d)", ErrInvalidAddress, addr, len(addr))
	}
	if !strings.HasPrefix(addr, sommAddressPrefix) {
		return fmt.Errorf("%w: %q must start with %q", ErrInvalidAddress, addr, sommAddressPrefix)
	}
	for i := len(sommAddressPrefix); i < len(addr); i++ {
		if !strings.ContainsRune(bech32Charset, rune(addr[i])) {
			return fmt.Errorf("%w: %q has invalid character %q", ErrInvalidAddress, addr, addr[i])
		}
	}
	return nil
}
