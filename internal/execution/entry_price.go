package execution

import "github.com/deniscmrg/investia-api/internal/domain"

// CheckEntryPrice validates a resting order's entry price against the
// current quote. A limit must rest at a price at least as good as the
// market; a stop must rest beyond it. Market kinds are not this check's
// business and pass unconditionally. Returns the violated rule's reason
// code, or "".
func CheckEntryPrice(kind domain.OrderKind, price float64, q *domain.Quote) string {
	if !kind.IsPending() {
		return ""
	}
	if q == nil {
		return domain.ReasonNoQuote
	}
	switch kind {
	case domain.KindBuyLimit:
		if price > q.Ask {
			return domain.ReasonLimitPriceTooHigh
		}
	case domain.KindSellLimit:
		if price < q.Bid {
			return domain.ReasonLimitPriceTooLow
		}
	case domain.KindBuyStop:
		if price < q.Ask {
			return domain.ReasonStopPriceTooLow
		}
	case domain.KindSellStop:
		if price > q.Bid {
			return domain.ReasonStopPriceTooHigh
		}
	}
	return ""
}
