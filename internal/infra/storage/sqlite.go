package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"auction_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage persists user wallet registrations and standing orders in SQLite.
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a SQLite storage instance at path. An empty path
// resolves to the per-user default location.
func NewStorage(path string) (*Storage, error) {
	if path == "" {
		var err error
		path, err = defaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
	}

	// Ensure directory exists
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.UserWallet{}, &domain.StandingOrderRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

func defaultDBPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "AuctionGo", "data", "auction.db"), nil
}

// ======================================================================================
// Wallet Operations
// ======================================================================================

// UpsertWallet registers or replaces the somm address for a user. The
// address shape is validated up front; checksum verification is left to the
// submission layer.
func (s *Storage) UpsertWallet(userID int64, sommAddress string) error {
	if err := domain.ValidateSommAddress(sommAddress); err != nil {
		return err
	}
	wallet := domain.UserWallet{
		UserID:      userID,
		SommAddress: sommAddress,
	}
	return s.db.Save(&wallet).Error
}

// GetWallet retrieves the wallet registration for a user
func (s *Storage) GetWallet(userID int64) (*domain.UserWallet, error) {
	var wallet domain.UserWallet
	err := s.db.First(&wallet, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	return &wallet, err
}

// DeleteWallet removes a user's wallet registration
func (s *Storage) DeleteWallet(userID int64) error {
	return s.db.Where("user_id = ?", userID).Delete(&domain.UserWallet{}).Error
}

// ======================================================================================
// Standing Order Operations
// ======================================================================================

// SaveOrder creates or updates a standing order record. The denoms are
// validated through the same path the order book uses later.
func (s *Storage) SaveOrder(rec *domain.StandingOrderRecord) error {
	if _, err := rec.ToOrder(); err != nil {
		return err
	}
	return s.db.Save(rec).Error
}

// ListOrders retrieves all standing order records
func (s *Storage) ListOrders() ([]domain.StandingOrderRecord, error) {
	var records []domain.StandingOrderRecord
	err := s.db.Find(&records).Error
	return records, err
}

// DeleteOrder removes a standing order record
func (s *Storage) DeleteOrder(id uint) error {
	return s.db.Delete(&domain.StandingOrderRecord{}, id).Error
}

// LoadOrderBook converts all persisted orders into an order book keyed by
// sale denom. A row that fails validation is skipped with a warning so one
// bad record cannot block the rest.
func (s *Storage) LoadOrderBook() (domain.OrderBook, error) {
	records, err := s.ListOrders()
	if err != nil {
		return nil, err
	}

	book := make(domain.OrderBook)
	for i := range records {
		order, err := records[i].ToOrder()
		if err != nil {
			slog.Warn("Skipping invalid standing order record",
				slog.Uint64("id", uint64(records[i].ID)),
				slog.Any("error", err),
			)
			continue
		}
		book[order.SaleDenom] = append(book[order.SaleDenom], order)
	}
	return book, nil
}
