package ingest

import (
	"fmt"
	"io"

	"github.com/dmarinho/orderdesk/internal/ingest/feedcsv"
	"github.com/dmarinho/orderdesk/internal/order"
)

type Service struct {
	csvParser      Parser
	snapshotParser Parser
}

func NewService() *Service {
	return &Service{
		csvParser:      feedcsv.New(),
		snapshotParser: NewSnapshotParser(),
	}
}

func (s *Service) Parse(format Format, r io.Reader) ([]*order.Order, error) {
	var parser Parser

	switch format {
	case FormatCSV:
		parser = s.csvParser
	case FormatSnapshot:
		parser = s.snapshotParser
	default:
		return nil, fmt.Errorf("unknown ingest format: %s", format)
	}

	return parser.Parse(r)
}
