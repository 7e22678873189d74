package report

import (
	"strings"

	"github.com/dmarinho/orderdesk/internal/order"
)

// DefaultPageSize matches the dashboards' fixed table height.
const DefaultPageSize = 10

// PaymentFilter narrows a table to settled or outstanding orders.
type PaymentFilter string

const (
	PaymentAny  PaymentFilter = ""
	PaymentPaid PaymentFilter = "paid"
	PaymentDue  PaymentFilter = "due"
)

// Query is the full filter state of a dashboard table.
type Query struct {
	Search   string // substring over partner name, display id, service name
	Status   *order.Status
	Payment  PaymentFilter
	Page     int // 1-based; out-of-range pages clamp
	PageSize int
}

// Page is one page of derived rows plus the pagination totals the table
// footer needs.
type Page struct {
	Rows       []order.View
	Page       int
	TotalRows  int
	TotalPages int
}

// Run filters, derives, and paginates in one shot. It is a pure function of
// (orders, query): the same inputs always produce the same page.
func Run(orders []order.Order, q Query) Page {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))

	var rows []order.View

	for _, o := range orders {
		v := order.Derive(o)

		if search != "" && !matchesSearch(v, search) {
			continue
		}

		if q.Status != nil && v.Status != *q.Status {
			continue
		}

		switch q.Payment {
		case PaymentPaid:
			if v.DueAmount > 0 {
				continue
			}
		case PaymentDue:
			if v.DueAmount == 0 {
				continue
			}
		}

		rows = append(rows, v)
	}

	totalRows := len(rows)

	totalPages := (totalRows + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize

	end := start + pageSize
	if end > totalRows {
		end = totalRows
	}

	return Page{
		Rows:       rows[start:end],
		Page:       page,
		TotalRows:  totalRows,
		TotalPages: totalPages,
	}
}

func matchesSearch(v order.View, search string) bool {
	return strings.Contains(strings.ToLower(v.PartnerName), search) ||
		strings.Contains(strings.ToLower(v.DisplayID), search) ||
		strings.Contains(strings.ToLower(v.ServiceName), search)
}
