// Package terminal defines the contract with the MetaTrader terminal
// collaborator and its HTTP bridge implementation. The gateway never
// manages the terminal session itself; connect/retry belongs to the
// bridge process on the other side.
package terminal

import (
	"context"
	"errors"
	"time"

	"github.com/deniscmrg/investia-api/internal/domain"
)

// Sentinel errors for collaborator-side absence. Anything else returned
// by a Client is a transport or terminal failure.
var (
	ErrSymbolNotFound   = errors.New("terminal: symbol not found")
	ErrNoQuote          = errors.New("terminal: no quote available")
	ErrPositionNotFound = errors.New("terminal: position not found")
)

// ErrBridgeUnreachable marks transport failures reaching the bridge
// process, as opposed to the bridge answering with an error.
var ErrBridgeUnreachable = errors.New("terminal: bridge unreachable")

// Client is the capability set the gateway needs from the terminal.
// Every call is synchronous and fallible; none is retried at this layer.
type Client interface {
	// Status returns terminal connectivity and the account snapshot.
	Status(ctx context.Context) (*domain.TerminalStatus, error)

	// EnsureSymbol makes the symbol visible in the terminal, the
	// precondition for every other per-symbol call. Returns
	// ErrSymbolNotFound for symbols the server does not list.
	EnsureSymbol(ctx context.Context, symbol string) error

	// Constraints fetches the symbol's trading metadata.
	Constraints(ctx context.Context, symbol string) (*domain.SymbolConstraints, error)

	// Quote fetches the current bid/ask snapshot. Returns ErrNoQuote when
	// the symbol has no tick.
	Quote(ctx context.Context, symbol string) (*domain.Quote, error)

	// DailyBar fetches today's candle extremes, or nil when none exists.
	DailyBar(ctx context.Context, symbol string) (*domain.DailyBar, error)

	// Positions lists all open positions.
	Positions(ctx context.Context) ([]domain.Position, error)

	// Position fetches a single open position by ticket.
	Position(ctx context.Context, ticket int64) (*domain.Position, error)

	// PendingOrders lists all resting orders.
	PendingOrders(ctx context.Context) ([]domain.PendingOrder, error)

	// HistoryDeals lists executed deals in [from, to].
	HistoryDeals(ctx context.Context, from, to time.Time) ([]domain.Deal, error)

	// Send submits an order request and returns the terminal's raw
	// acknowledgement without reshaping it.
	Send(ctx context.Context, req *domain.OrderRequest) (domain.Acknowledgement, error)
}
