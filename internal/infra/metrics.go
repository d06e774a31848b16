package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	refreshTotal    atomic.Uint64
	refreshFailures atomic.Uint64
	cyclesTotal     atomic.Uint64
	auctionsSkipped atomic.Uint64
	bidsEmitted     atomic.Uint64
	bidsSubmitted   atomic.Uint64
	errorsTotal     atomic.Uint64

	// Gauges
	activeAuctions  atomic.Int32
	feedConnected   atomic.Int32 // 1 = connected, 0 = disconnected
	lastRefreshUnix atomic.Int64
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordRefresh records a successful cache refresh.
func (m *Metrics) RecordRefresh() {
	m.refreshTotal.Add(1)
	m.lastRefreshUnix.Store(time.Now().Unix())
}

// RecordRefreshFailure records a failed cache refresh.
func (m *Metrics) RecordRefreshFailure() {
	m.refreshFailures.Add(1)
	m.errorsTotal.Add(1)
}

// RecordCycle records one completed evaluation cycle.
func (m *Metrics) RecordCycle() {
	m.cyclesTotal.Add(1)
}

// RecordAuctionSkipped records an auction skipped for malformed data.
func (m *Metrics) RecordAuctionSkipped() {
	m.auctionsSkipped.Add(1)
}

// RecordBidEmitted records a qualifying bid pushed to the dispatch channel.
func (m *Metrics) RecordBidEmitted() {
	m.bidsEmitted.Add(1)
}

// RecordBidSubmitted records a bid accepted by the submission layer.
func (m *Metrics) RecordBidSubmitted() {
	m.bidsSubmitted.Add(1)
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// SetActiveAuctions sets the current cached auction count.
func (m *Metrics) SetActiveAuctions(count int32) {
	m.activeAuctions.Store(count)
}

// SetFeedConnected sets the price feed connection state.
func (m *Metrics) SetFeedConnected(connected bool) {
	if connected {
		m.feedConnected.Store(1)
	} else {
		m.feedConnected.Store(0)
	}
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	RefreshTotal    uint64
	RefreshFailures uint64
	CyclesTotal     uint64
	AuctionsSkipped uint64
	BidsEmitted     uint64
	BidsSubmitted   uint64
	ErrorsTotal     uint64
	ActiveAuctions  int32
	FeedConnected   bool
	LastRefresh     time.Time
	Timestamp       time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var lastRefresh time.Time
	if unix := m.lastRefreshUnix.Load(); unix > 0 {
		lastRefresh = time.Unix(unix, 0)
	}

	return MetricsSnapshot{
		RefreshTotal:    m.refreshTotal.Load(),
		RefreshFailures: m.refreshFailures.Load(),
		CyclesTotal:     m.cyclesTotal.Load(),
		AuctionsSkipped: m.auctionsSkipped.Load(),
		BidsEmitted:     m.bidsEmitted.Load(),
		BidsSubmitted:   m.bidsSubmitted.Load(),
		ErrorsTotal:     m.errorsTotal.Load(),
		ActiveAuctions:  m.activeAuctions.Load(),
		FeedConnected:   m.feedConnected.Load() == 1,
		LastRefresh:     lastRefresh,
		Timestamp:       time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.refreshTotal.Store(0)
	m.refreshFailures.Store(0)
	m.cyclesTotal.Store(0)
	m.auctionsSkipped.Store(0)
	m.bidsEmitted.Store(0)
	m.bidsSubmitted.Store(0)
	m.errorsTotal.Store(0)
	m.activeAuctions.Store(0)
	m.feedConnected.Store(0)
	m.lastRefreshUnix.Store(0)
}
