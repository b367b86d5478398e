// Package ingestion subscribes to the MT5 bridge's tick stream and
// republishes ticks for the WebSocket hub.
package ingestion

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/deniscmrg/investia-api/internal/domain"
	redisrepo "github.com/deniscmrg/investia-api/internal/repository/redis"
)

// StreamClient keeps a WebSocket subscription to the bridge's /stream
// endpoint alive, reconnecting with exponential backoff, and publishes
// every received tick to the redis relay.
type StreamClient struct {
	wsURL    string
	symbols  []string
	tickRepo *redisrepo.TickRepo
	logger   *slog.Logger
}

func NewStreamClient(wsURL string, symbols []string, repo *redisrepo.TickRepo, logger *slog.Logger) *StreamClient {
	return &StreamClient{
		wsURL:    wsURL,
		symbols:  symbols,
		tickRepo: repo,
		logger:   logger,
	}
}

func (c *StreamClient) Run(ctx context.Context) {
	backoff := time.Second
	maxBackoff := 60 * time.Second
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		err := c.connect(ctx)
		if err == nil {
			backoff = time.Second
			continue
		}
		c.logger.Error("bridge stream disconnected", "err", err, "retrying_in", backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (c *StreamClient) connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return err
	}
	defer func() {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}()

	subMsg, _ := json.Marshal(map[string]any{
		"action":  "subscribe",
		"symbols": c.symbols,
	})
	if err := conn.WriteMessage(websocket.TextMessage, subMsg); err != nil {
		return err
	}

	c.logger.Info("bridge stream connected", "symbols", c.symbols)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var tick domain.PriceTick
		if err := json.Unmarshal(data, &tick); err != nil || tick.Symbol == "" {
			continue
		}
		if err := c.tickRepo.Publish(ctx, tick); err != nil {
			c.logger.Error("failed to publish tick", "err", err)
		}
	}
}
