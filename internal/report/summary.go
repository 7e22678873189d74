// Package report builds the derived statistics, chart series, and table
// pages the role dashboards render. Everything here is a pure transform over
// an order slice: callers re-run these on every data refresh instead of
// keeping incremental state.
package report

import (
	"github.com/dmarinho/orderdesk/internal/order"
)

// StatusBreakdown counts orders of one type per workflow state.
type StatusBreakdown struct {
	Total     int
	Waiting   int // normalized Pending
	Progress  int
	Completed int
	Cancelled int
}

// Breakdown tallies orders of the given type by normalized status.
func Breakdown(orders []order.Order, t order.Type) StatusBreakdown {
	var b StatusBreakdown

	for _, o := range orders {
		v := order.Derive(o)
		if v.Type != t {
			continue
		}

		b.Total++

		switch v.Status {
		case order.StatusPending:
			b.Waiting++
		case order.StatusInProgress:
			b.Progress++
		case order.StatusCompleted:
			b.Completed++
		case order.StatusCancelled:
			b.Cancelled++
		}
	}

	return b
}

// Summary is the per-type overview a dashboard's stat cards show.
type Summary struct {
	Agency     StatusBreakdown
	Correction StatusBreakdown
	EGreeting  StatusBreakdown
	Service    StatusBreakdown
}

// Summarize builds breakdowns for every order type in one pass-equivalent
// call.
func Summarize(orders []order.Order) Summary {
	return Summary{
		Agency:     Breakdown(orders, order.TypeAgency),
		Correction: Breakdown(orders, order.TypeCorrection),
		EGreeting:  Breakdown(orders, order.TypeEGreeting),
		Service:    Breakdown(orders, order.TypeService),
	}
}
