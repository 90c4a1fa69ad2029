package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"IntelPull/internal/domain/models"
	xlogger "IntelPull/pkg/logger"

	"github.com/gorilla/websocket"
)

// quoteMaxAge bounds how stale a streamed quote may be before the
// adapter refuses to contribute it.
const quoteMaxAge = 5 * time.Minute

type quote struct {
	price  float64
	volume float64
	at     time.Time
}

// QuoteStream keeps a live WebSocket subscription to a market data feed and
// serves the last observed trade per symbol. The read loop runs in the
// background; Fetch only consults the in-memory quote table, so it never
// blocks on the network.
type QuoteStream struct {
	apiKey         string
	websocketURL   string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	logger         *xlogger.Logger

	conn      *websocket.Conn
	connected bool

	mu     sync.RWMutex
	quotes map[string]quote
}

// NewQuoteStream creates the streaming quote adapter.
func NewQuoteStream(apiKey, websocketURL string, symbols []string, reconnectDelay, pingInterval time.Duration, log *xlogger.Logger) *QuoteStream {
	return &QuoteStream{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		logger:         log,
		quotes:         make(map[string]quote),
	}
}

func (q *QuoteStream) Name() string { return "quotestream" }

func (q *QuoteStream) Supports(category models.Category) bool {
	switch category {
	case models.CategoryFinancial, models.CategoryGeneric:
		return true
	}
	return false
}

// Fetch contributes the last streamed price for the ticker, if fresh enough.
func (q *QuoteStream) Fetch(_ context.Context, req models.IntelligenceRequest) (models.SourceResult, error) {
	ticker := req.NormalizedTicker()

	q.mu.RLock()
	last, ok := q.quotes[ticker]
	q.mu.RUnlock()

	if !ok {
		return models.SourceResult{}, fmt.Errorf("quotestream: no quote for %s", ticker)
	}
	if time.Since(last.at) > quoteMaxAge {
		return models.SourceResult{}, fmt.Errorf("quotestream: quote for %s is stale", ticker)
	}

	data := models.Candidate{
		models.FieldTicker:      ticker,
		models.FieldSharePrice:  last.price,
		models.FieldVolume:      last.volume,
		models.FieldLastUpdated: models.FormatTime(last.at),
	}

	return models.SourceResult{
		Source:     q.Name(),
		Data:       data,
		Confidence: 0.7,
	}, nil
}

// Connect establishes the WebSocket connection.
func (q *QuoteStream) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", q.websocketURL, q.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("quotestream connect: %w", err)
	}
	q.conn = conn
	q.connected = true
	q.logger.Info("quotestream: connected")
	return nil
}

// Subscribe subscribes to configured symbols.
func (q *QuoteStream) Subscribe(ctx context.Context) error {
	if q.conn == nil || !q.connected {
		return fmt.Errorf("quotestream not connected")
	}
	for _, s := range q.symbols {
		msg := map[string]string{"type": "subscribe", "symbol": s}
		if err := q.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", s, err)
		}
	}
	q.logger.Info("quotestream: subscribed", xlogger.Int("symbols", len(q.symbols)))
	return nil
}

type wsTrade struct {
	S string  `json:"s"`
	P float64 `json:"p"`
	V float64 `json:"v"`
	T int64   `json:"t"` // ms
}

type wsMessage struct {
	Type string    `json:"type"`
	Data []wsTrade `json:"data"`
}

// Run connects, subscribes and consumes the stream until ctx is cancelled,
// reconnecting with a fixed delay on read errors.
func (q *QuoteStream) Run(ctx context.Context) {
	for {
		if err := q.connectAndSubscribe(ctx); err != nil {
			q.logger.Error("quotestream: connect failed", xlogger.Error(err))
		} else {
			q.readLoop(ctx)
		}

		select {
		case <-ctx.Done():
			_ = q.Close()
			return
		case <-time.After(q.reconnectDelay):
		}
	}
}

func (q *QuoteStream) connectAndSubscribe(ctx context.Context) error {
	if err := q.Connect(ctx); err != nil {
		return err
	}
	return q.Subscribe(ctx)
}

func (q *QuoteStream) readLoop(ctx context.Context) {
	pingCtx, cancelPing := context.WithCancel(ctx)
	defer cancelPing()

	go func() {
		ticker := time.NewTicker(q.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pingCtx.Done():
				return
			case <-ticker.C:
				if q.conn != nil {
					_ = q.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, b, err := q.conn.ReadMessage()
		if err != nil {
			q.logger.Warn("quotestream: read failed", xlogger.Error(err))
			_ = q.Close()
			return
		}

		var m wsMessage
		if err := json.Unmarshal(b, &m); err != nil {
			// ignore non-trade frames
			continue
		}
		if m.Type != "trade" {
			continue
		}

		q.mu.Lock()
		for _, d := range m.Data {
			q.quotes[d.S] = quote{price: d.P, volume: d.V, at: time.UnixMilli(d.T)}
		}
		q.mu.Unlock()
	}
}

// Close closes the WS connection.
func (q *QuoteStream) Close() error {
	q.connected = false
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (q *QuoteStream) IsConnected() bool { return q.connected }
