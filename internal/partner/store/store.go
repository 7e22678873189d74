package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindName(ctx context.Context, partnerID string) (string, error) {
	query := `SELECT name FROM partners WHERE partner_id = $1`

	var name string

	err := s.db.QueryRowContext(ctx, query, partnerID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("finding partner name: %w", err)
	}

	return name, nil
}

func (s *Store) SaveName(ctx context.Context, partnerID, name string) error {
	query := `
		INSERT INTO partners (partner_id, name, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (partner_id) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, partnerID, name); err != nil {
		return fmt.Errorf("saving partner name: %w", err)
	}

	return nil
}
