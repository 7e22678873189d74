package view

import (
	"context"
	"time"

	"github.com/dmarinho/orderdesk/internal/order"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders paise for table cells.
func FormatAmount(paise int64) string {
	return order.FormatINR(paise)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
