package execution

import "github.com/deniscmrg/investia-api/internal/domain"

// Request tagging, carried over from the legacy API so deals remain
// traceable per execution style in the terminal's history.
const (
	orderComment = "API_MT5"
	closeComment = "Fechamento_API"

	magicMarket = 1001
	magicLimit  = 1002
	magicStop   = 1003

	maxDeviationPoints = 20
)

func magicFor(style domain.ExecutionStyle) int {
	switch style {
	case domain.StyleLimit:
		return magicLimit
	case domain.StyleStop:
		return magicStop
	default:
		return magicMarket
	}
}

// BuildOrderRequest composes the terminal request for a validated
// intent. Market intents become immediate deals at the normalized quote
// side with IOC filling; limit/stop intents become pending orders at the
// normalized requested price with Return filling, so a partial fill
// leaves the remainder resting instead of cancelling it. SL/TP pass
// through only when the intent carries them.
func BuildOrderRequest(intent *domain.TradeIntent, c *domain.SymbolConstraints, q *domain.Quote) *domain.OrderRequest {
	kind := intent.Kind()
	req := &domain.OrderRequest{
		Symbol:     intent.Symbol,
		Volume:     intent.Quantity,
		Kind:       kind,
		Deviation:  maxDeviationPoints,
		Magic:      magicFor(intent.Style),
		Comment:    orderComment,
		TimePolicy: domain.TimeGTC,
		StopLoss:   intent.StopLoss,
		TakeProfit: intent.TakeProfit,
	}
	if kind.IsPending() {
		req.Action = domain.ActionPending
		req.FillPolicy = domain.FillReturn
		req.Price = Normalize(*intent.Price, c.TickSize)
		return req
	}
	req.Action = domain.ActionDeal
	req.FillPolicy = domain.FillIOC
	if kind.IsBuy() {
		req.Price = Normalize(q.Ask, c.TickSize)
	} else {
		req.Price = Normalize(q.Bid, c.TickSize)
	}
	return req
}

// BuildStopAdjust composes an SLTP request for an open position. A nil
// field keeps the position's current value, so adjusting one stop never
// wipes the other.
func BuildStopAdjust(pos *domain.Position, stopLoss, takeProfit *float64) *domain.OrderRequest {
	sl := pos.StopLoss
	if stopLoss != nil {
		sl = *stopLoss
	}
	tp := pos.TakeProfit
	if takeProfit != nil {
		tp = *takeProfit
	}
	return &domain.OrderRequest{
		Action:     domain.ActionModifyStops,
		Symbol:     pos.Symbol,
		Position:   pos.Ticket,
		StopLoss:   &sl,
		TakeProfit: &tp,
	}
}

// BuildClose composes the opposite deal that flattens an open position
// at the current quote.
func BuildClose(pos *domain.Position, q *domain.Quote) *domain.OrderRequest {
	kind := domain.KindSellMarket
	price := q.Bid
	if !pos.Kind.IsBuy() {
		kind = domain.KindBuyMarket
		price = q.Ask
	}
	return &domain.OrderRequest{
		Action:     domain.ActionDeal,
		Symbol:     pos.Symbol,
		Volume:     pos.Volume,
		Kind:       kind,
		Price:      price,
		Position:   pos.Ticket,
		Deviation:  maxDeviationPoints,
		Magic:      magicMarket,
		Comment:    closeComment,
		TimePolicy: domain.TimeGTC,
		FillPolicy: domain.FillIOC,
	}
}
