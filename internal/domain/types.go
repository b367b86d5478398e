package domain

// OrderSide is the trade direction, using the wire values of the public API.
type OrderSide string

const (
	SideBuy  OrderSide = "compra"
	SideSell OrderSide = "venda"
)

// ExecutionStyle selects how the order reaches the market.
type ExecutionStyle string

const (
	StyleMarket ExecutionStyle = "mercado"
	StyleLimit  ExecutionStyle = "limite"
	StyleStop   ExecutionStyle = "stop"
)

// OrderKind is the resolved side x style combination. The numeric values
// are MT5's ORDER_TYPE_* constants so the kind serializes straight into
// the terminal request.
type OrderKind int

const (
	KindBuyMarket  OrderKind = 0
	KindSellMarket OrderKind = 1
	KindBuyLimit   OrderKind = 2
	KindSellLimit  OrderKind = 3
	KindBuyStop    OrderKind = 4
	KindSellStop   OrderKind = 5
)

var kindTable = map[OrderSide]map[ExecutionStyle]OrderKind{
	SideBuy: {
		StyleMarket: KindBuyMarket,
		StyleLimit:  KindBuyLimit,
		StyleStop:   KindBuyStop,
	},
	SideSell: {
		StyleMarket: KindSellMarket,
		StyleLimit:  KindSellLimit,
		StyleStop:   KindSellStop,
	},
}

// KindFor resolves the order kind for a side and execution style. The
// second return is false for combinations outside the table.
func KindFor(side OrderSide, style ExecutionStyle) (OrderKind, bool) {
	styles, ok := kindTable[side]
	if !ok {
		return 0, false
	}
	kind, ok := styles[style]
	return kind, ok
}

// IsBuy reports whether the kind opens or extends a long exposure.
func (k OrderKind) IsBuy() bool {
	return k == KindBuyMarket || k == KindBuyLimit || k == KindBuyStop
}

// IsPending reports whether the kind is a resting (limit/stop) order.
func (k OrderKind) IsPending() bool {
	return k != KindBuyMarket && k != KindSellMarket
}

// TradeIntent is the client's requested trade as received by the API.
// Price is required for limit/stop styles; StopLoss and TakeProfit are
// optional and absent means "do not attach".
type TradeIntent struct {
	Symbol     string         `json:"ticker"`
	Side       OrderSide      `json:"tipo"`
	Style      ExecutionStyle `json:"estilo,omitempty"`
	Quantity   float64        `json:"quantidade"`
	Price      *float64       `json:"preco,omitempty"`
	StopLoss   *float64       `json:"sl,omitempty"`
	TakeProfit *float64       `json:"tp,omitempty"`
}

// Check validates the intent structurally, before anything is asked of
// the terminal. An empty style defaults to market, matching the legacy
// API where every order was a market order. Returns a rejection reason
// code, or "" when the intent is well formed.
func (i *TradeIntent) Check() string {
	if i.Symbol == "" {
		return ReasonSymbolRequired
	}
	if i.Style == "" {
		i.Style = StyleMarket
	}
	kind, ok := KindFor(i.Side, i.Style)
	if !ok {
		return ReasonInvalidSideOrStyle
	}
	if i.Quantity <= 0 {
		return ReasonInvalidQuantity
	}
	if kind.IsPending() && i.Price == nil {
		return ReasonPriceRequired
	}
	return ""
}

// Kind resolves the order kind of a structurally valid intent.
func (i *TradeIntent) Kind() OrderKind {
	kind, _ := KindFor(i.Side, i.Style)
	return kind
}

// SymbolConstraints is the terminal's trading metadata for one symbol,
// fetched fresh per request and never cached here.
type SymbolConstraints struct {
	Symbol         string  `json:"ticker"`
	MinVolume      float64 `json:"volume_min"`
	MaxVolume      float64 `json:"volume_max"`
	VolumeStep     float64 `json:"volume_step"`
	TickSize       float64 `json:"tick_size"`
	StopLevelTicks int     `json:"stops_level"`
	Digits         int     `json:"digits"`
}

// Quote is one bid/ask snapshot from the terminal.
type Quote struct {
	Symbol string  `json:"ticker"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
	Last   float64 `json:"last"`
	TimeMs int64   `json:"time"`
}

// ValidationVerdict is the single output of order validation: admissible
// or rejected with the first violated rule. Constraints echoes the
// snapshot the decision was made against; it is zero-valued when the
// intent was rejected before the terminal was consulted.
type ValidationVerdict struct {
	Admissible  bool              `json:"admissivel"`
	Reason      string            `json:"motivo,omitempty"`
	Constraints SymbolConstraints `json:"limites"`
}

// Rejection reason codes. One per rule, stable across releases; clients
// branch on these rather than on message text.
const (
	ReasonSymbolRequired     = "symbol_required"
	ReasonInvalidSideOrStyle = "invalid_side_or_style"
	ReasonInvalidQuantity    = "invalid_quantity"
	ReasonPriceRequired      = "price_required"

	ReasonConstraintsUnavailable = "constraints_unavailable"
	ReasonVolumeBelowMinimum     = "volume_below_minimum"
	ReasonVolumeAboveMaximum     = "volume_above_maximum"
	ReasonVolumeInvalidStep      = "volume_invalid_step"

	ReasonNoQuote           = "no_quote"
	ReasonLimitPriceTooHigh = "limit_price_too_high"
	ReasonLimitPriceTooLow  = "limit_price_too_low"
	ReasonStopPriceTooLow   = "stop_price_too_low"
	ReasonStopPriceTooHigh  = "stop_price_too_high"

	ReasonStopLossWrongSide   = "stop_loss_wrong_side"
	ReasonStopLossTooClose    = "stop_loss_too_close"
	ReasonTakeProfitWrongSide = "take_profit_wrong_side"
	ReasonTakeProfitTooClose  = "take_profit_too_close"
)
