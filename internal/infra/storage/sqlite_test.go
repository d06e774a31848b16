package storage

import (
	"path/filepath"
	"testing"

	"auction_go/internal/domain"
)

const testAddress = "somm1qpzry9x8gf2tvdw0s3jn54khce6mua7lqqqqpq"

func setupTestDB(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return s
}

func TestUpsertAndGetWallet(t *testing.T) {
	s := setupTestDB(t)

	// 1. Create
	if err := s.UpsertWallet(42, testAddress); err != nil {
		t.Fatalf("UpsertWallet failed: %v", err)
	}

	// 2. Get
	wallet, err := s.GetWallet(42)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet == nil {
		t.Fatal("fetched wallet is nil")
	}
	if wallet.SommAddress != testAddress {
		t.Errorf("expected %s, got %s", testAddress, wallet.SommAddress)
	}
}

func TestGetWallet_NotFound(t *testing.T) {
	s := setupTestDB(t)

	wallet, err := s.GetWallet(999)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet != nil {
		t.Error("expected nil for missing wallet")
	}
}

func TestUpsertWallet_InvalidAddress(t *testing.T) {
	s := setupTestDB(t)

	if err := s.UpsertWallet(1, "not-an-address"); err == nil {
		t.Error("expected validation error")
	}
}

func TestDeleteWallet(t *testing.T) {
	s := setupTestDB(t)

	if err := s.UpsertWallet(7, testAddress); err != nil {
		t.Fatalf("UpsertWallet failed: %v", err)
	}
	if err := s.DeleteWallet(7); err != nil {
		t.Fatalf("DeleteWallet failed: %v", err)
	}

	wallet, _ := s.GetWallet(7)
	if wallet != nil {
		t.Error("wallet should be gone after delete")
	}
}

func TestSaveAndListOrders(t *testing.T) {
	s := setupTestDB(t)

	rec := &domain.StandingOrderRecord{
		SaleDenom:          "uusdc",
		MaximumUsommIn:     500,
		MinimumUsdValueOut: 100,
		FeeToken:           "usomm",
	}
	if err := s.SaveOrder(rec); err != nil {
		t.Fatalf("SaveOrder failed: %v", err)
	}

	records, err := s.ListOrders()
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].SaleDenom != "uusdc" {
		t.Errorf("expected uusdc, got %s", records[0].SaleDenom)
	}
}

func TestSaveOrder_InvalidDenom(t *testing.T) {
	s := setupTestDB(t)

	rec := &domain.StandingOrderRecord{SaleDenom: "!", FeeToken: "usomm", MaximumUsommIn: 1}
	if err := s.SaveOrder(rec); err == nil {
		t.Error("expected validation error for bad denom")
	}
}

func TestDeleteOrder(t *testing.T) {
	s := setupTestDB(t)

	rec := &domain.StandingOrderRecord{SaleDenom: "uusdc", MaximumUsommIn: 1, FeeToken: "usomm"}
	if err := s.SaveOrder(rec); err != nil {
		t.Fatalf("SaveOrder failed: %v", err)
	}
	if err := s.DeleteOrder(rec.ID); err != nil {
		t.Fatalf("DeleteOrder failed: %v", err)
	}

	records, _ := s.ListOrders()
	if len(records) != 0 {
		t.Errorf("expected 0 records after delete, got %d", len(records))
	}
}

func TestLoadOrderBook(t *testing.T) {
	s := setupTestDB(t)

	for _, rec := range []*domain.StandingOrderRecord{
		{SaleDenom: "uusdc", MaximumUsommIn: 500, MinimumUsdValueOut: 100, FeeToken: "usomm"},
		{SaleDenom: "uusdc", MaximumUsommIn: 900, MinimumUsdValueOut: 50, FeeToken: "usomm"},
		{SaleDenom: "uusdt", MaximumUsommIn: 100, MinimumUsdValueOut: 10, FeeToken: "usomm"},
	} {
		if err := s.SaveOrder(rec); err != nil {
			t.Fatalf("SaveOrder failed: %v", err)
		}
	}

	book, err := s.LoadOrderBook()
	if err != nil {
		t.Fatalf("LoadOrderBook failed: %v", err)
	}

	if len(book[domain.MustDenom("uusdc")]) != 2 {
		t.Errorf("expected 2 uusdc orders, got %d", len(book[domain.MustDenom("uusdc")]))
	}
	if len(book[domain.MustDenom("uusdt")]) != 1 {
		t.Errorf("expected 1 uusdt order, got %d", len(book[domain.MustDenom("uusdt")]))
	}
}
