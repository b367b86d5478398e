package domain

import "encoding/json"

// TradeAction is MT5's TRADE_ACTION_* request discriminator.
type TradeAction int

const (
	ActionDeal        TradeAction = 1 // immediate execution at market
	ActionPending     TradeAction = 5 // place a resting order
	ActionModifyStops TradeAction = 6 // change SL/TP of an open position
)

// FillPolicy is MT5's ORDER_FILLING_*.
type FillPolicy int

const (
	FillFOK    FillPolicy = 0
	FillIOC    FillPolicy = 1
	FillReturn FillPolicy = 2
)

// TimePolicy is MT5's ORDER_TIME_*.
type TimePolicy int

const (
	TimeGTC TimePolicy = 0
	TimeDay TimePolicy = 1
)

// OrderRequest is the fully resolved structure handed to the terminal's
// order_send. Field names and numeric values match the MT5 request dict.
// StopLoss and TakeProfit are pointers: a nil field is omitted from the
// wire so it cannot clobber stops already set on the broker side.
type OrderRequest struct {
	Action     TradeAction `json:"action"`
	Symbol     string      `json:"symbol"`
	Volume     float64     `json:"volume,omitempty"`
	Kind       OrderKind   `json:"type"`
	Price      float64     `json:"price,omitempty"`
	StopLoss   *float64    `json:"sl,omitempty"`
	TakeProfit *float64    `json:"tp,omitempty"`
	Deviation  int         `json:"deviation,omitempty"`
	Magic      int         `json:"magic,omitempty"`
	Comment    string      `json:"comment,omitempty"`
	TimePolicy TimePolicy  `json:"type_time"`
	FillPolicy FillPolicy  `json:"type_filling"`
	Position   int64       `json:"position,omitempty"`
}

// Acknowledgement is the terminal's order_send result, passed back to the
// client verbatim.
type Acknowledgement = json.RawMessage

// Position is an open position as reported by the terminal.
type Position struct {
	Ticket     int64     `json:"ticket"`
	Symbol     string    `json:"symbol"`
	Kind       OrderKind `json:"type"`
	Volume     float64   `json:"volume"`
	PriceOpen  float64   `json:"price_open"`
	StopLoss   float64   `json:"sl"`
	TakeProfit float64   `json:"tp"`
	Profit     float64   `json:"profit"`
	TimeMs     int64     `json:"time"`
}

// PendingOrder is a resting order as reported by the terminal.
type PendingOrder struct {
	Ticket     int64     `json:"ticket"`
	Symbol     string    `json:"symbol"`
	Kind       OrderKind `json:"type"`
	Volume     float64   `json:"volume_current"`
	PriceOpen  float64   `json:"price_open"`
	StopLoss   float64   `json:"sl"`
	TakeProfit float64   `json:"tp"`
	TimeMs     int64     `json:"time_setup"`
}

// Deal is one executed deal from the terminal's history.
type Deal struct {
	Ticket      int64     `json:"ticket"`
	OrderTicket int64     `json:"order"`
	Symbol      string    `json:"symbol"`
	Kind        OrderKind `json:"type"`
	Volume      float64   `json:"volume"`
	Price       float64   `json:"price"`
	Profit      float64   `json:"profit"`
	TimeMs      int64     `json:"time"`
}

// AccountInfo is the account snapshot exposed on /status.
type AccountInfo struct {
	Login    int64   `json:"login"`
	Name     string  `json:"name"`
	Server   string  `json:"server"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
	Equity   float64 `json:"equity"`
	Margin   float64 `json:"margin"`
	Leverage int     `json:"leverage"`
}

// TerminalStatus combines terminal and account state.
type TerminalStatus struct {
	Connected    bool         `json:"connected"`
	TradeAllowed bool         `json:"trade_allowed"`
	Server       string       `json:"server"`
	PingLastMs   int          `json:"ping_last"`
	Account      *AccountInfo `json:"conta,omitempty"`
}

// DailyBar carries the current day's candle extremes for the quote endpoint.
type DailyBar struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// PriceTick is one streamed tick, published to subscribers of the live
// quote feed.
type PriceTick struct {
	Symbol string  `json:"ticker"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
	Last   float64 `json:"last"`
	TimeMs int64   `json:"time"`
}
