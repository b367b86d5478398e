package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/deniscmrg/investia-api/internal/domain"
)

// Compile-time interface check.
var _ Client = (*BridgeClient)(nil)

// BridgeClient talks to the MT5 HTTP bridge. Paths mirror the MT5 Python
// API function names the bridge wraps.
type BridgeClient struct {
	baseURL string
	http    *http.Client
}

// NewBridgeClient creates a client for the bridge at baseURL.
func NewBridgeClient(baseURL string, timeout time.Duration) *BridgeClient {
	return &BridgeClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type bridgeError struct {
	Error string `json:"error"`
}

// do issues the request and decodes a 2xx JSON body into out. A non-2xx
// status is mapped to notFound when the bridge answered 404, otherwise
// to a generic failure carrying the bridge's error message.
func (c *BridgeClient) do(ctx context.Context, method, path string, body, out any, notFound error) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrBridgeUnreachable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && notFound != nil {
		return notFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var be bridgeError
		if json.NewDecoder(resp.Body).Decode(&be) == nil && be.Error != "" {
			return fmt.Errorf("bridge %s: %s", path, be.Error)
		}
		return fmt.Errorf("bridge %s: status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *BridgeClient) Status(ctx context.Context) (*domain.TerminalStatus, error) {
	var st domain.TerminalStatus
	if err := c.do(ctx, http.MethodGet, "/terminal_info", nil, &st, nil); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *BridgeClient) EnsureSymbol(ctx context.Context, symbol string) error {
	path := "/symbol_select/" + url.PathEscape(symbol)
	return c.do(ctx, http.MethodPost, path, nil, nil, ErrSymbolNotFound)
}

func (c *BridgeClient) Constraints(ctx context.Context, symbol string) (*domain.SymbolConstraints, error) {
	var sc domain.SymbolConstraints
	path := "/symbol_info/" + url.PathEscape(symbol)
	if err := c.do(ctx, http.MethodGet, path, nil, &sc, ErrSymbolNotFound); err != nil {
		return nil, err
	}
	sc.Symbol = symbol
	return &sc, nil
}

func (c *BridgeClient) Quote(ctx context.Context, symbol string) (*domain.Quote, error) {
	var q domain.Quote
	path := "/symbol_info_tick/" + url.PathEscape(symbol)
	if err := c.do(ctx, http.MethodGet, path, nil, &q, ErrNoQuote); err != nil {
		return nil, err
	}
	q.Symbol = symbol
	return &q, nil
}

func (c *BridgeClient) DailyBar(ctx context.Context, symbol string) (*domain.DailyBar, error) {
	var bars []domain.DailyBar
	path := "/rates/" + url.PathEscape(symbol) + "?timeframe=D1&count=1"
	if err := c.do(ctx, http.MethodGet, path, nil, &bars, nil); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, nil
	}
	return &bars[0], nil
}

func (c *BridgeClient) Positions(ctx context.Context) ([]domain.Position, error) {
	var positions []domain.Position
	if err := c.do(ctx, http.MethodGet, "/positions", nil, &positions, nil); err != nil {
		return nil, err
	}
	return positions, nil
}

func (c *BridgeClient) Position(ctx context.Context, ticket int64) (*domain.Position, error) {
	var p domain.Position
	path := "/positions/" + strconv.FormatInt(ticket, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &p, ErrPositionNotFound); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *BridgeClient) PendingOrders(ctx context.Context) ([]domain.PendingOrder, error) {
	var orders []domain.PendingOrder
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders, nil); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *BridgeClient) HistoryDeals(ctx context.Context, from, to time.Time) ([]domain.Deal, error) {
	var deals []domain.Deal
	path := fmt.Sprintf("/history_deals?from=%d&to=%d", from.Unix(), to.Unix())
	if err := c.do(ctx, http.MethodGet, path, nil, &deals, nil); err != nil {
		return nil, err
	}
	return deals, nil
}

func (c *BridgeClient) Send(ctx context.Context, req *domain.OrderRequest) (domain.Acknowledgement, error) {
	var ack json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/order_send", req, &ack, nil); err != nil {
		return nil, err
	}
	return domain.Acknowledgement(ack), nil
}
