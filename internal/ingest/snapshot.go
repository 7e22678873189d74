package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dmarinho/orderdesk/internal/order"
)

// SnapshotParser reads a JSON snapshot of the upstream order collection: an
// array of loosely-typed documents as the document store serves them.
type SnapshotParser struct{}

func NewSnapshotParser() *SnapshotParser {
	return &SnapshotParser{}
}

// document is one raw order as exported. Field access goes through helpers
// because producers disagree on types and nesting.
type document map[string]any

func (p *SnapshotParser) Parse(r io.Reader) ([]*order.Order, error) {
	var docs []document
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	orders := make([]*order.Order, 0, len(docs))

	for i, doc := range docs {
		o, err := normalize(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}

		orders = append(orders, o)
	}

	return orders, nil
}

func normalize(doc document) (*order.Order, error) {
	sourceID := doc.str("id")
	if sourceID == "" {
		return nil, fmt.Errorf("missing id")
	}

	// Newer documents carry pricing.priceToAdmin; legacy ones a flat amount.
	price := doc.nested("pricing", "priceToAdmin")
	if price == nil {
		price = doc["amount"]
	}

	o := &order.Order{
		SourceID:    sourceID,
		DisplayID:   doc.str("displayId"),
		ServiceName: doc.strNested("service", "name"),
		Duration:    doc.str("Duration"),
		Correction:  doc.boolVal("isCorrection"),
		AdminPrice:  order.ParsePaise(price),
		PaidAmount:  order.ParsePaise(doc["paidAmount"]),
		RawStatus:   doc.str("status"),
		PartnerID:   doc.str("partnerId"),
		PartnerName: doc.str("partnerName"),
		AssignedTo:  doc.strNested("assignedTo", "name"),
		CreatedAt:   doc.timeVal("createdAt"),
	}

	if history, ok := doc["paymentHistory"].([]any); ok {
		for _, entry := range history {
			e, ok := entry.(map[string]any)
			if !ok {
				continue
			}

			ed := document(e)
			o.Payments = append(o.Payments, order.Payment{
				Amount:     order.ParsePaise(ed["amount"]),
				Note:       ed.str("note"),
				VerifiedBy: ed.str("verifiedBy"),
				CreatedAt:  ed.timeVal("at"),
			})
		}
	}

	return o, nil
}

func (d document) str(key string) string {
	s, _ := d[key].(string)
	return s
}

func (d document) boolVal(key string) bool {
	b, _ := d[key].(bool)
	return b
}

func (d document) nested(key, sub string) any {
	m, ok := d[key].(map[string]any)
	if !ok {
		return nil
	}

	return m[sub]
}

func (d document) strNested(key, sub string) string {
	s, _ := d.nested(key, sub).(string)
	return s
}

// timeVal accepts the timestamp shapes seen in exports: RFC3339 strings,
// epoch milliseconds, and the document store's {"_seconds": n} form.
// Unparseable values yield the zero time.
func (d document) timeVal(key string) time.Time {
	switch v := d[key].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}

		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	case float64:
		return time.UnixMilli(int64(v))
	case map[string]any:
		if secs, ok := v["_seconds"].(float64); ok {
			return time.Unix(int64(secs), 0)
		}
	}

	return time.Time{}
}
