package execution

import "github.com/deniscmrg/investia-api/internal/domain"

// CheckStops validates optional stop-loss / take-profit levels against
// the reference price: quote side for market orders, entry price for
// resting ones. The terminal publishes its minimum stop distance in
// ticks; when the stop level or tick size is unknown no restriction
// exists and everything passes. Returns the violated rule's reason
// code, or "".
func CheckStops(kind domain.OrderKind, reference float64, stopLoss, takeProfit *float64, c *domain.SymbolConstraints) string {
	if c == nil || c.StopLevelTicks <= 0 || c.TickSize <= 0 {
		return ""
	}
	minDistance := float64(c.StopLevelTicks) * c.TickSize
	buy := kind.IsBuy()

	if stopLoss != nil {
		distance := reference - *stopLoss
		if !buy {
			distance = *stopLoss - reference
		}
		if distance <= 0 {
			return domain.ReasonStopLossWrongSide
		}
		if distance < minDistance {
			return domain.ReasonStopLossTooClose
		}
	}

	if takeProfit != nil {
		distance := *takeProfit - reference
		if !buy {
			distance = reference - *takeProfit
		}
		if distance <= 0 {
			return domain.ReasonTakeProfitWrongSide
		}
		if distance < minDistance {
			return domain.ReasonTakeProfitTooClose
		}
	}

	return ""
}
