package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"auction_go/internal/domain"
	"auction_go/internal/infra"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

const (
	maxRetries   = 10
	pingInterval = 30 * time.Second
	readTimeout  = 60 * time.Second
)

// subscribeRequest follows the Coinbase Exchange feed protocol, which the
// default endpoint speaks. Any feed with the same ticker shape works.
type subscribeRequest struct {
	Type       string   `json:"type"`
	ProductIDs []string `json:"product_ids"`
	Channels   []string `json:"channels"`
}

// tickerMessage is one ticker frame from the feed.
type tickerMessage struct {
	Type      string `json:"type"`
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
}

// Worker maintains a websocket subscription to an exchange ticker feed and
// publishes the best-known USD value per base unit of each mapped denom.
// Every publish hands the consumer a fresh copy of the whole map, so the
// consumer swaps it in atomically and never observes a partial update.
type Worker struct {
	wsURL    string
	products map[string]domain.Denom // product id -> denom
	onUpdate func(map[domain.Denom]decimal.Decimal)

	latest map[domain.Denom]decimal.Decimal

	conn      *websocket.Conn
	mu        sync.RWMutex
	writeMu   sync.Mutex
	connected bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewWorker creates a price feed worker. products maps exchange product ids
// (e.g. "SOMM-USD") to chain denoms; onUpdate receives a full replacement
// price map after every change.
func NewWorker(wsURL string, products map[string]domain.Denom, onUpdate func(map[domain.Denom]decimal.Decimal)) *Worker {
	return &Worker{
		wsURL:    wsURL,
		products: products,
		onUpdate: onUpdate,
		latest:   make(map[domain.Denom]decimal.Decimal),
	}
}

// Connect starts the connection loop in the background.
func (w *Worker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *Worker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("Price feed connection failed", slog.Any("error", err), slog.Int("retry", retryCount))
			delay := infra.CalculateBackoff(retryCount)
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
				continue
			}
		} else {
			retryCount = 0
			w.readLoop(ctx)
		}
	}
}

func (w *Worker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	conn, _, err := dialer.DialContext(ctx, w.wsURL, http.Header{})
	if err != nil {
		return domain.NewSourceError("dial", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.connected = true
	w.mu.Unlock()

	if err := w.subscribe(); err != nil {
		w.closeConnection()
		return err
	}

	infra.GlobalMetrics.SetFeedConnected(true)
	slog.Info("Price feed connected", slog.Int("products", len(w.products)))

	w.wg.Add(1)
	go w.pingLoop(ctx)
	return nil
}

func (w *Worker) subscribe() error {
	ids := make([]string, 0, len(w.products))
	for product := range w.products {
		ids = append(ids, product)
	}

	req := subscribeRequest{
		Type:       "subscribe",
		ProductIDs: ids,
		Channels:   []string{"ticker"},
	}
	b, _ := json.Marshal(req)
	return w.threadSafeWrite(websocket.TextMessage, b)
}

func (w *Worker) threadSafeWrite(msgType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.conn == nil {
		return fmt.Errorf("no conn")
	}
	return w.conn.WriteMessage(msgType, data)
}

func (w *Worker) pingLoop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.threadSafeWrite(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (w *Worker) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.mu.RLock()
		if w.conn == nil {
			w.mu.RUnlock()
			return
		}
		w.conn.SetReadDeadline(time.Now().Add(readTimeout))
		w.mu.RUnlock()

		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			w.closeConnection()
			return
		}
		w.handleMessage(msg)
	}
}

func (w *Worker) handleMessage(msg []byte) {
	var ticker tickerMessage
	if json.Unmarshal(msg, &ticker) != nil || ticker.Type != "ticker" {
		return
	}

	denom, ok := w.products[ticker.ProductID]
	if !ok {
		return
	}

	price, err := decimal.NewFromString(ticker.Price)
	if err != nil || !price.IsPositive() {
		slog.Warn("Ignoring bad ticker price",
			slog.String("product", ticker.ProductID),
			slog.String("price", ticker.Price),
		)
		return
	}

	w.mu.Lock()
	w.latest[denom] = price
	snapshot := make(map[domain.Denom]decimal.Decimal, len(w.latest))
	for d, p := range w.latest {
		snapshot[d] = p
	}
	w.mu.Unlock()

	if w.onUpdate != nil {
		w.onUpdate(snapshot)
	}
}

func (w *Worker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	w.connected = false
	infra.GlobalMetrics.SetFeedConnected(false)
}

// IsConnected reports whether the websocket is currently up.
func (w *Worker) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

// Disconnect stops the worker and waits for its goroutines.
func (w *Worker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}
