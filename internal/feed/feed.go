// Package feed pulls order snapshots from the upstream document store's
// export endpoint and mirrors them into the local database.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmarinho/orderdesk/internal/ingest"
	"github.com/dmarinho/orderdesk/internal/order"
	"github.com/dmarinho/orderdesk/internal/partner"
)

// Service fetches the upstream snapshot and ingests it.
type Service struct {
	orders   *order.Service
	partners *partner.Directory
	parser   ingest.Parser
	client   *http.Client
	feedURL  string
	token    string
}

func NewService(orders *order.Service, partners *partner.Directory, feedURL, token string) *Service {
	return &Service{
		orders:   orders,
		partners: partners,
		parser:   ingest.NewSnapshotParser(),
		client:   &http.Client{Timeout: 30 * time.Second},
		feedURL:  feedURL,
		token:    token,
	}
}

// SyncResult reports one completed pull.
type SyncResult struct {
	Fetched  int
	Inserted int
	Updated  int
}

// Sync pulls the full snapshot, upserts every order, and records any partner
// names seen along the way. Partner-name failures are not fatal: the
// directory is a convenience layer and the mirror must not roll back over
// it.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	orders, err := s.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}

	result, err := s.orders.IngestBatch(ctx, orders)
	if err != nil {
		return nil, fmt.Errorf("ingesting snapshot: %w", err)
	}

	for _, o := range orders {
		_ = s.partners.Remember(ctx, o.PartnerID, o.PartnerName)
	}

	return &SyncResult{
		Fetched:  len(orders),
		Inserted: result.Inserted,
		Updated:  result.Updated,
	}, nil
}

func (s *Service) fetch(ctx context.Context) ([]*order.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from feed", resp.StatusCode)
	}

	return s.parser.Parse(resp.Body)
}
