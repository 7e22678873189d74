package feedcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/dmarinho/orderdesk/internal/encoding"
	"github.com/dmarinho/orderdesk/internal/order"
)

// Parser reads CSV exports of the upstream order collection and produces
// normalized orders. The export layout is auto-detected by matching column
// headers against known profiles, and the charset is sniffed because the
// files come from whatever spreadsheet tool the exporter had open.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]*order.Order, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching export format: expected console or portal headers")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header matching a known profile. Export
// files sometimes carry preamble lines above the header, so every row is a
// candidate.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts orders from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]*order.Order, error) {
	var orders []*order.Order

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		sourceID := cell(row, cols, p.IDCol)
		if sourceID == "" {
			continue // trailing footer or blank line
		}

		service := cell(row, cols, p.ServiceCol)
		if service == "" {
			return nil, fmt.Errorf("row %d: missing service name", rowNum)
		}

		createdAt, ok := parseDate(cell(row, cols, p.DateCol))
		if !ok {
			return nil, fmt.Errorf("row %d: unparseable date %q", rowNum, cell(row, cols, p.DateCol))
		}

		orders = append(orders, &order.Order{
			SourceID:    sourceID,
			DisplayID:   cell(row, cols, p.DisplayCol),
			ServiceName: service,
			Duration:    cell(row, cols, p.DurationCol),
			AdminPrice:  order.ParsePaise(cell(row, cols, p.PriceCol)),
			PaidAmount:  order.ParsePaise(cell(row, cols, p.PaidCol)),
			RawStatus:   cell(row, cols, p.StatusCol),
			PartnerID:   cell(row, cols, p.PartnerIDCol),
			PartnerName: cell(row, cols, p.PartnerNameCol),
			AssignedTo:  cell(row, cols, p.AssignedCol),
			CreatedAt:   createdAt,
		})
	}

	return orders, nil
}

// cell returns the trimmed value of a named column, or "" when the column is
// absent from the profile or the row is too short.
func cell(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// dateLayouts covers the formats seen across exports.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
