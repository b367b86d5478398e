package execution

import (
	"context"
	"errors"
	"fmt"

	"github.com/deniscmrg/investia-api/internal/domain"
	"github.com/deniscmrg/investia-api/internal/terminal"
)

// OrderService sequences the validation pipeline against live terminal
// data and submits admissible orders. It holds no state between calls:
// constraints and quotes are resolved fresh on every Validate/Submit,
// so a dry-run verdict never vouches for a later submission.
type OrderService struct {
	terminal terminal.Client
}

// NewOrderService creates an OrderService bound to the given terminal.
func NewOrderService(t terminal.Client) *OrderService {
	return &OrderService{terminal: t}
}

// Result is one validation outcome plus the snapshots it was decided
// against. Constraints and Quote are nil when the pipeline rejected
// before resolving them.
type Result struct {
	Verdict     domain.ValidationVerdict
	Constraints *domain.SymbolConstraints
	Quote       *domain.Quote
}

func rejected(reason string, c *domain.SymbolConstraints) *Result {
	r := &Result{Verdict: domain.ValidationVerdict{Reason: reason}}
	if c != nil {
		r.Verdict.Constraints = *c
		r.Constraints = c
	}
	return r
}

// Validate runs the full admission pipeline: structural checks, symbol
// activation, volume, entry price (resting orders only) and stop
// distances. The first violated rule rejects and short-circuits; no
// further terminal calls are made once a verdict is reached. A non-nil
// error means the terminal could not be consulted, not that the order
// is bad.
func (s *OrderService) Validate(ctx context.Context, intent *domain.TradeIntent) (*Result, error) {
	if reason := intent.Check(); reason != "" {
		return rejected(reason, nil), nil
	}
	kind := intent.Kind()

	if err := s.terminal.EnsureSymbol(ctx, intent.Symbol); err != nil {
		return nil, err
	}
	constraints, err := s.terminal.Constraints(ctx, intent.Symbol)
	if err != nil {
		return nil, err
	}

	if reason := CheckVolume(intent.Quantity, constraints); reason != "" {
		return rejected(reason, constraints), nil
	}

	quote, err := s.terminal.Quote(ctx, intent.Symbol)
	if err != nil {
		if errors.Is(err, terminal.ErrNoQuote) {
			return rejected(domain.ReasonNoQuote, constraints), nil
		}
		return nil, err
	}

	var reference float64
	if kind.IsPending() {
		price := Normalize(*intent.Price, constraints.TickSize)
		if reason := CheckEntryPrice(kind, price, quote); reason != "" {
			return rejected(reason, constraints), nil
		}
		reference = price
	} else if kind.IsBuy() {
		reference = quote.Ask
	} else {
		reference = quote.Bid
	}

	if reason := CheckStops(kind, reference, intent.StopLoss, intent.TakeProfit, constraints); reason != "" {
		return rejected(reason, constraints), nil
	}

	return &Result{
		Verdict:     domain.ValidationVerdict{Admissible: true, Constraints: *constraints},
		Constraints: constraints,
		Quote:       quote,
	}, nil
}

// Submit re-validates the intent against fresh terminal data and, only
// on an admissible verdict, builds and sends the order. The returned
// acknowledgement is the terminal's, untouched; on rejection the Result
// carries the verdict and the acknowledgement is nil.
func (s *OrderService) Submit(ctx context.Context, intent *domain.TradeIntent) (domain.Acknowledgement, *Result, error) {
	res, err := s.Validate(ctx, intent)
	if err != nil {
		return nil, nil, err
	}
	if !res.Verdict.Admissible {
		return nil, res, nil
	}
	req := BuildOrderRequest(intent, res.Constraints, res.Quote)
	ack, err := s.terminal.Send(ctx, req)
	if err != nil {
		return nil, res, fmt.Errorf("order submission: %w", err)
	}
	return ack, res, nil
}
