package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmarinho/orderdesk/internal/order"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanOrder reads an order row and returns a populated Order.
// Expected column order: id, source_id, display_id, service_name, duration,
// correction, admin_price, paid_amount, raw_status, partner_id, partner_name,
// assigned_to, created_at, updated_at, deleted_at
func scanOrder(s scanner) (*order.Order, error) {
	var o order.Order

	var displayID, duration, rawStatus, partnerID, partnerName, assignedTo sql.NullString

	if err := s.Scan(
		&o.ID, &o.SourceID, &displayID, &o.ServiceName, &duration, &o.Correction,
		&o.AdminPrice, &o.PaidAmount, &rawStatus, &partnerID, &partnerName, &assignedTo,
		&o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	); err != nil {
		return nil, err
	}

	o.DisplayID = displayID.String
	o.Duration = duration.String
	o.RawStatus = rawStatus.String
	o.PartnerID = partnerID.String
	o.PartnerName = partnerName.String
	o.AssignedTo = assignedTo.String

	return &o, nil
}

const selectOrderColumns = `
	o.id, o.source_id, o.display_id, o.service_name, o.duration, o.correction,
	o.admin_price, o.paid_amount, o.raw_status, o.partner_id, o.partner_name,
	o.assigned_to, o.created_at, o.updated_at, o.deleted_at
`

func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (source_id, display_id, service_name, duration, correction,
			admin_price, paid_amount, raw_status, partner_id, partner_name, assigned_to,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		o.SourceID,
		o.DisplayID,
		o.ServiceName,
		o.Duration,
		o.Correction,
		o.AdminPrice,
		o.PaidAmount,
		o.RawStatus,
		o.PartnerID,
		o.PartnerName,
		o.AssignedTo,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	return nil
}

func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + `
		FROM orders o
		WHERE o.id = $1 AND o.deleted_at IS NULL`

	o, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("getting order: %w", err)
	}

	payments, err := s.listPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	o.Payments = payments

	return o, nil
}

func (s *Store) listPayments(ctx context.Context, orderID uuid.UUID) ([]order.Payment, error) {
	query := `SELECT id, amount, note, verified_by, created_at
		FROM order_payments
		WHERE order_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []order.Payment

	for rows.Next() {
		var p order.Payment

		var note, verifiedBy sql.NullString

		if err := rows.Scan(&p.ID, &p.Amount, &note, &verifiedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Note = note.String
		p.VerifiedBy = verifiedBy.String
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (s *Store) ListOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + `
		FROM orders o
		WHERE o.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.PartnerID != nil {
		query += fmt.Sprintf(" AND o.partner_id = $%d", argIdx)

		args = append(args, *filter.PartnerID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND o.created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND o.created_at <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY o.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (s *Store) UpdateRawStatus(ctx context.Context, id uuid.UUID, rawStatus string) error {
	query := `UPDATE orders SET raw_status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, query, rawStatus, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return order.ErrNotFound
	}

	return nil
}

// AddPayment appends a payment row and bumps the order's paid amount in a
// single transaction, so the history and the running total cannot drift.
func (s *Store) AddPayment(ctx context.Context, id uuid.UUID, p *order.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning payment tx: %w", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO order_payments (order_id, amount, note, verified_by, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	if err := tx.QueryRowContext(ctx, insert, id, p.Amount, p.Note, p.VerifiedBy).
		Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}

	update := `UPDATE orders SET paid_amount = paid_amount + $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL`

	res, err := tx.ExecContext(ctx, update, p.Amount, id)
	if err != nil {
		return fmt.Errorf("updating paid amount: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return order.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing payment: %w", err)
	}

	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE orders SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return order.ErrNotFound
	}

	return nil
}

// ingestTx implements order.IngestTx over a database transaction.
type ingestTx struct {
	tx *sql.Tx
}

func (s *Store) BeginIngest(ctx context.Context) (order.IngestTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ingest tx: %w", err)
	}

	return &ingestTx{tx: tx}, nil
}

func (t *ingestTx) FindExisting(ctx context.Context, sourceIDs []string) (map[string]uuid.UUID, error) {
	query := `SELECT source_id, id FROM orders WHERE source_id = ANY($1) AND deleted_at IS NULL`

	rows, err := t.tx.QueryContext(ctx, query, sourceIDs)
	if err != nil {
		return nil, fmt.Errorf("finding existing orders: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]uuid.UUID)

	for rows.Next() {
		var sourceID string

		var id uuid.UUID

		if err := rows.Scan(&sourceID, &id); err != nil {
			return nil, fmt.Errorf("scanning existing order: %w", err)
		}

		existing[sourceID] = id
	}

	return existing, rows.Err()
}

func (t *ingestTx) UpsertOrders(ctx context.Context, orders []*order.Order) error {
	query := `
		INSERT INTO orders (source_id, display_id, service_name, duration, correction,
			admin_price, paid_amount, raw_status, partner_id, partner_name, assigned_to,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (source_id) DO UPDATE SET
			display_id = EXCLUDED.display_id,
			service_name = EXCLUDED.service_name,
			duration = EXCLUDED.duration,
			correction = EXCLUDED.correction,
			admin_price = EXCLUDED.admin_price,
			paid_amount = EXCLUDED.paid_amount,
			raw_status = EXCLUDED.raw_status,
			partner_id = EXCLUDED.partner_id,
			partner_name = EXCLUDED.partner_name,
			assigned_to = EXCLUDED.assigned_to,
			updated_at = NOW()
		RETURNING id
	`

	for _, o := range orders {
		createdAt := o.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		if err := t.tx.QueryRowContext(ctx, query,
			o.SourceID, o.DisplayID, o.ServiceName, o.Duration, o.Correction,
			o.AdminPrice, o.PaidAmount, o.RawStatus, o.PartnerID, o.PartnerName,
			o.AssignedTo, createdAt,
		).Scan(&o.ID); err != nil {
			return fmt.Errorf("upserting order %s: %w", o.SourceID, err)
		}
	}

	return nil
}

func (t *ingestTx) Commit() error {
	return t.tx.Commit()
}

func (t *ingestTx) Rollback() error {
	return t.tx.Rollback()
}
