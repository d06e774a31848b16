package domain

import (
	"errors"
	"fmt"
)

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// SourceError represents a failure talking to the auction source or another
// remote collaborator. Usually retriable: the next cycle retries and the
// cache keeps its previous contents.
type SourceError struct {
	Op        string // Operation that failed (e.g., "active_auctions", "dial")
	Err       error  // Underlying error
	Retriable bool
}

func (e *SourceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SourceError) IsRetriable() bool {
	return e.Retriable
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a retriable source error
func NewSourceError(op string, err error) *SourceError {
	return &SourceError{Op: op, Err: err, Retriable: true}
}

// NewFatalSourceError creates a non-retriable source error
func NewFatalSourceError(op string, err error) *SourceError {
	return &SourceError{Op: op, Err: err, Retriable: false}
}

// MalformedAuctionError reports an unparseable field on one specific
// auction. Never retriable and never fatal to a cycle: the offending
// auction is skipped and the scan continues.
type MalformedAuctionError struct {
	AuctionID uint32
	Field     string
	Err       error
}

func (e *MalformedAuctionError) Error() string {
	return fmt.Sprintf("auction %d: malformed %s: %v", e.AuctionID, e.Field, e.Err)
}

func (e *MalformedAuctionError) IsRetriable() bool {
	return false
}

func (e *MalformedAuctionError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrInvalidDenom is returned when a denom string fails validation. Not retriable.
	ErrInvalidDenom = errors.New("invalid denom")

	// ErrInvalidAddress is returned when a somm address fails validation. Not retriable.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrConfigNotFound is returned when the configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
