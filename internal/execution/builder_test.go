package execution

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/deniscmrg/investia-api/internal/domain"
)

func TestBuildOrderRequestMarketBuy(t *testing.T) {
	intent := &domain.TradeIntent{
		Symbol:   "EURUSD",
		Side:     domain.SideBuy,
		Style:    domain.StyleMarket,
		Quantity: 0.5,
		StopLoss: f(1.09500),
	}
	req := BuildOrderRequest(intent, testConstraints(), testQuote())

	if req.Action != domain.ActionDeal {
		t.Fatalf("action = %v, want deal", req.Action)
	}
	if req.Kind != domain.KindBuyMarket {
		t.Fatalf("kind = %v, want buy market", req.Kind)
	}
	if req.Price != 1.10010 {
		t.Fatalf("price = %v, want ask 1.10010", req.Price)
	}
	if req.FillPolicy != domain.FillIOC {
		t.Fatalf("fill policy = %v, want IOC", req.FillPolicy)
	}
	if req.Magic != magicMarket || req.Comment != orderComment {
		t.Fatalf("tag = (%d, %q), want (%d, %q)", req.Magic, req.Comment, magicMarket, orderComment)
	}
	if req.StopLoss == nil || *req.StopLoss != 1.09500 {
		t.Fatalf("stop loss not carried: %v", req.StopLoss)
	}
	if req.TakeProfit != nil {
		t.Fatalf("take profit should stay unset")
	}
}

func TestBuildOrderRequestMarketSellUsesBid(t *testing.T) {
	intent := &domain.TradeIntent{
		Symbol:   "EURUSD",
		Side:     domain.SideSell,
		Style:    domain.StyleMarket,
		Quantity: 0.1,
	}
	req := BuildOrderRequest(intent, testConstraints(), testQuote())
	if req.Price != 1.10000 {
		t.Fatalf("price = %v, want bid 1.10000", req.Price)
	}
	if req.Kind != domain.KindSellMarket {
		t.Fatalf("kind = %v, want sell market", req.Kind)
	}
}

func TestBuildOrderRequestPending(t *testing.T) {
	intent := &domain.TradeIntent{
		Symbol:   "EURUSD",
		Side:     domain.SideBuy,
		Style:    domain.StyleLimit,
		Quantity: 0.01,
		Price:    f(1.099102), // off the tick grid
	}
	req := BuildOrderRequest(intent, testConstraints(), testQuote())

	if req.Action != domain.ActionPending {
		t.Fatalf("action = %v, want pending", req.Action)
	}
	if req.FillPolicy != domain.FillReturn {
		t.Fatalf("fill policy = %v, want return (keep unfilled remainder)", req.FillPolicy)
	}
	if got := Normalize(req.Price, 0.00001); got != req.Price {
		t.Fatalf("pending price %v not normalized", req.Price)
	}
	if req.Magic != magicLimit {
		t.Fatalf("magic = %d, want %d", req.Magic, magicLimit)
	}
}

func TestOrderRequestOmitsUnsetStops(t *testing.T) {
	intent := &domain.TradeIntent{
		Symbol:   "EURUSD",
		Side:     domain.SideBuy,
		Style:    domain.StyleMarket,
		Quantity: 0.5,
	}
	req := BuildOrderRequest(intent, testConstraints(), testQuote())
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if strings.Contains(body, `"sl"`) || strings.Contains(body, `"tp"`) {
		t.Fatalf("unset stops must be omitted from the wire: %s", body)
	}
}

func TestBuildStopAdjustKeepsExistingStops(t *testing.T) {
	pos := &domain.Position{
		Ticket:     42,
		Symbol:     "EURUSD",
		Kind:       domain.KindBuyMarket,
		Volume:     0.5,
		StopLoss:   1.09000,
		TakeProfit: 1.12000,
	}
	req := BuildStopAdjust(pos, f(1.09500), nil)

	if req.Action != domain.ActionModifyStops {
		t.Fatalf("action = %v, want modify stops", req.Action)
	}
	if req.Position != 42 {
		t.Fatalf("position = %d, want 42", req.Position)
	}
	if *req.StopLoss != 1.09500 {
		t.Fatalf("sl = %v, want 1.09500", *req.StopLoss)
	}
	if *req.TakeProfit != 1.12000 {
		t.Fatalf("tp = %v, want existing 1.12000", *req.TakeProfit)
	}
}

func TestBuildCloseFlipsSide(t *testing.T) {
	q := testQuote()
	long := &domain.Position{Ticket: 7, Symbol: "EURUSD", Kind: domain.KindBuyMarket, Volume: 0.3}
	req := BuildClose(long, q)
	if req.Kind != domain.KindSellMarket || req.Price != q.Bid {
		t.Fatalf("closing a long must sell at bid, got kind=%v price=%v", req.Kind, req.Price)
	}
	if req.Position != 7 || req.Volume != 0.3 {
		t.Fatalf("close must target the position's ticket and full volume")
	}
	if req.Comment != closeComment {
		t.Fatalf("comment = %q, want %q", req.Comment, closeComment)
	}

	short := &domain.Position{Ticket: 8, Symbol: "EURUSD", Kind: domain.KindSellMarket, Volume: 0.3}
	req = BuildClose(short, q)
	if req.Kind != domain.KindBuyMarket || req.Price != q.Ask {
		t.Fatalf("closing a short must buy at ask, got kind=%v price=%v", req.Kind, req.Price)
	}
}
