package terminal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deniscmrg/investia-api/internal/domain"
)

func TestBridgeConstraints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/symbol_info/EURUSD" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"volume_min":0.01,"volume_max":10,"volume_step":0.01,"tick_size":0.00001,"stops_level":100,"digits":5}`))
	}))
	defer srv.Close()

	c := NewBridgeClient(srv.URL, time.Second)
	sc, err := c.Constraints(context.Background(), "EURUSD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Symbol != "EURUSD" || sc.MinVolume != 0.01 || sc.StopLevelTicks != 100 {
		t.Fatalf("constraints decoded wrong: %+v", sc)
	}
}

func TestBridgeNotFoundMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewBridgeClient(srv.URL, time.Second)

	if _, err := c.Constraints(context.Background(), "NOPE"); !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("want ErrSymbolNotFound, got %v", err)
	}
	if _, err := c.Quote(context.Background(), "NOPE"); !errors.Is(err, ErrNoQuote) {
		t.Fatalf("want ErrNoQuote, got %v", err)
	}
	if _, err := c.Position(context.Background(), 1); !errors.Is(err, ErrPositionNotFound) {
		t.Fatalf("want ErrPositionNotFound, got %v", err)
	}
	if err := c.EnsureSymbol(context.Background(), "NOPE"); !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("want ErrSymbolNotFound, got %v", err)
	}
}

func TestBridgeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := srv.URL
	srv.Close()

	c := NewBridgeClient(deadURL, time.Second)
	if _, err := c.Status(context.Background()); !errors.Is(err, ErrBridgeUnreachable) {
		t.Fatalf("want ErrBridgeUnreachable, got %v", err)
	}
}

func TestBridgeErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"terminal not connected"}`))
	}))
	defer srv.Close()

	c := NewBridgeClient(srv.URL, time.Second)
	_, err := c.Quote(context.Background(), "EURUSD")
	if err == nil {
		t.Fatal("want error")
	}
	if want := "terminal not connected"; !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q does not carry bridge message %q", err, want)
	}
}

func TestBridgeSendPostsMT5Request(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/order_send" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatal("missing request correlation id")
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Write([]byte(`{"retcode":10009}`))
	}))
	defer srv.Close()

	sl := 1.095
	req := &domain.OrderRequest{
		Action:     domain.ActionDeal,
		Symbol:     "EURUSD",
		Volume:     0.5,
		Kind:       domain.KindBuyMarket,
		Price:      1.10010,
		StopLoss:   &sl,
		Deviation:  20,
		Magic:      1001,
		Comment:    "API_MT5",
		FillPolicy: domain.FillIOC,
	}
	c := NewBridgeClient(srv.URL, time.Second)
	ack, err := c.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(ack) != `{"retcode":10009}` {
		t.Fatalf("acknowledgement reshaped: %s", ack)
	}

	if received["action"].(float64) != 1 || received["type"].(float64) != 0 {
		t.Fatalf("MT5 numeric constants wrong: %v", received)
	}
	if received["type_filling"].(float64) != 1 {
		t.Fatalf("type_filling = %v, want IOC(1)", received["type_filling"])
	}
	if _, ok := received["tp"]; ok {
		t.Fatal("unset tp must not be serialized")
	}
	if received["sl"].(float64) != 1.095 {
		t.Fatalf("sl = %v, want 1.095", received["sl"])
	}
}

func TestBridgeHistoryDealsRange(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("from") == "" || q.Get("to") == "" {
			t.Fatalf("missing range params: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"ticket":1,"order":2,"symbol":"EURUSD","type":0,"volume":0.5,"price":1.1,"profit":12.5,"time":1709294400000}]`))
	}))
	defer srv.Close()

	c := NewBridgeClient(srv.URL, time.Second)
	deals, err := c.HistoryDeals(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deals) != 1 || deals[0].Profit != 12.5 {
		t.Fatalf("deals decoded wrong: %+v", deals)
	}
}
