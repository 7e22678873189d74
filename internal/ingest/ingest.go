// Package ingest normalizes upstream order documents into typed orders.
// The upstream store allows string-or-number prices, drifting status
// spellings, and optional nested fields; all of that is flattened here at
// the boundary so the rest of the code works with order.Order.
package ingest

import (
	"io"

	"github.com/dmarinho/orderdesk/internal/order"
)

// Format identifies the shape of an upstream export.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatSnapshot Format = "snapshot"
)

// Parser turns one upstream export stream into normalized orders.
type Parser interface {
	Parse(r io.Reader) ([]*order.Order, error)
}
