package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an order does not exist or is soft-deleted.
var ErrNotFound = errors.New("order not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=order
type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateRawStatus(ctx context.Context, id uuid.UUID, rawStatus string) error
	AddPayment(ctx context.Context, id uuid.UUID, p *Payment) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	BeginIngest(ctx context.Context) (IngestTx, error)
}

// IngestTx is a transactional batch upsert of upstream order documents.
type IngestTx interface {
	FindExisting(ctx context.Context, sourceIDs []string) (map[string]uuid.UUID, error)
	UpsertOrders(ctx context.Context, orders []*Order) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows ListOrders. Status filters on the normalized state and
// is applied in memory after the fetch, since only raw status text is stored.
type ListFilter struct {
	Status    *Status
	PartnerID *string
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, o *Order) error {
	return s.repo.CreateOrder(ctx, o)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// List fetches orders matching the filter. Date and partner constraints are
// pushed down to the store; the normalized-status constraint is evaluated
// here because normalization is a pure function over raw text.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	storeFilter := filter
	storeFilter.Status = nil

	orders, err := s.repo.ListOrders(ctx, storeFilter)
	if err != nil {
		return nil, err
	}

	if filter.Status == nil {
		return orders, nil
	}

	filtered := make([]*Order, 0, len(orders))

	for _, o := range orders {
		if NormalizeStatus(o.RawStatus) == *filter.Status {
			filtered = append(filtered, o)
		}
	}

	return filtered, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) error {
	return s.repo.UpdateRawStatus(ctx, id, rawStatus)
}

// RecordPayment appends a payment to the order's history and bumps its paid
// amount. The store does both in one transaction.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, amount int64, note, verifiedBy string) (*Payment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %d", amount)
	}

	p := &Payment{
		Amount:     amount,
		Note:       note,
		VerifiedBy: verifiedBy,
	}

	if err := s.repo.AddPayment(ctx, id, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteOrder(ctx, id)
}

// IngestResult summarizes one snapshot ingestion.
type IngestResult struct {
	Inserted int
	Updated  int
}

// IngestBatch upserts a batch of upstream documents keyed by their source id.
// Documents already mirrored keep their local id and are updated in place;
// the rest are inserted. The whole batch commits or rolls back together so a
// partial snapshot never lands.
func (s *Service) IngestBatch(ctx context.Context, orders []*Order) (*IngestResult, error) {
	if len(orders) == 0 {
		return &IngestResult{}, nil
	}

	sourceIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		if o.SourceID == "" {
			return nil, fmt.Errorf("order %q has no source id", o.DisplayID)
		}

		sourceIDs = append(sourceIDs, o.SourceID)
	}

	itx, err := s.repo.BeginIngest(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ingest: %w", err)
	}
	defer itx.Rollback()

	existing, err := itx.FindExisting(ctx, sourceIDs)
	if err != nil {
		return nil, fmt.Errorf("find existing: %w", err)
	}

	result := &IngestResult{}

	for _, o := range orders {
		if id, ok := existing[o.SourceID]; ok {
			o.ID = id
			result.Updated++

			continue
		}

		result.Inserted++
	}

	if err := itx.UpsertOrders(ctx, orders); err != nil {
		return nil, fmt.Errorf("upsert orders: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ingest: %w", err)
	}

	return result, nil
}
