package pricefeed

import (
	"testing"

	"auction_go/internal/domain"

	"github.com/shopspring/decimal"
)

func newTestWorker(onUpdate func(map[domain.Denom]decimal.Decimal)) *Worker {
	return NewWorker("wss://feed.example.com", map[string]domain.Denom{
		"SOMM-USD": domain.DenomUsomm,
		"USDC-USD": domain.MustDenom("uusdc"),
	}, onUpdate)
}

func TestWorker_HandleMessage(t *testing.T) {
	t.Run("Publishes Whole Map Copy", func(t *testing.T) {
		var published []map[domain.Denom]decimal.Decimal
		w := newTestWorker(func(m map[domain.Denom]decimal.Decimal) {
			published = append(published, m)
		})

		w.handleMessage([]byte(`{"type":"ticker","product_id":"SOMM-USD","price":"0.25"}`))
		w.handleMessage([]byte(`{"type":"ticker","product_id":"USDC-USD","price":"1.0"}`))

		if len(published) != 2 {
			t.Fatalf("Expected 2 publishes, got %d", len(published))
		}
		if !published[0][domain.DenomUsomm].Equal(decimal.NewFromFloat(0.25)) {
			t.Errorf("Unexpected first publish: %v", published[0])
		}

		second := published[1]
		if len(second) != 2 {
			t.Fatalf("Second publish should carry both prices, got %v", second)
		}
		if !second[domain.MustDenom("uusdc")].Equal(decimal.NewFromInt(1)) {
			t.Errorf("Unexpected uusdc price: %v", second)
		}

		// The published map is a copy: a later ticker must not mutate it.
		w.handleMessage([]byte(`{"type":"ticker","product_id":"SOMM-USD","price":"9.9"}`))
		if !second[domain.DenomUsomm].Equal(decimal.NewFromFloat(0.25)) {
			t.Error("Published map was mutated after the fact")
		}
	})

	t.Run("Unknown Product Ignored", func(t *testing.T) {
		called := false
		w := newTestWorker(func(map[domain.Denom]decimal.Decimal) { called = true })

		w.handleMessage([]byte(`{"type":"ticker","product_id":"BTC-USD","price":"70000"}`))
		if called {
			t.Error("Unmapped products must not publish")
		}
	})

	t.Run("Non-Ticker Frames Ignored", func(t *testing.T) {
		called := false
		w := newTestWorker(func(map[domain.Denom]decimal.Decimal) { called = true })

		w.handleMessage([]byte(`{"type":"subscriptions","channels":[]}`))
		w.handleMessage([]byte(`not json`))
		if called {
			t.Error("Only ticker frames should publish")
		}
	})

	t.Run("Bad Price Ignored", func(t *testing.T) {
		called := false
		w := newTestWorker(func(map[domain.Denom]decimal.Decimal) { called = true })

		w.handleMessage([]byte(`{"type":"ticker","product_id":"SOMM-USD","price":"zero"}`))
		w.handleMessage([]byte(`{"type":"ticker","product_id":"SOMM-USD","price":"-1"}`))
		if called {
			t.Error("Unparseable or non-positive prices must not publish")
		}
	})
}
