package partner

import (
	"context"
)

type Repository interface {
	FindName(ctx context.Context, partnerID string) (string, error)
	SaveName(ctx context.Context, partnerID, name string) error
}

// Directory resolves partner ids to display names. Upstream order documents
// only sometimes carry a partner name, so the directory remembers every name
// it sees and fills the gaps in reports.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

// Lookup returns the known display name for a partner.
// Returns empty string when the partner has never been seen.
func (d *Directory) Lookup(ctx context.Context, partnerID string) (string, error) {
	return d.repo.FindName(ctx, partnerID)
}

// Remember records a partner's display name, overwriting any older one.
// Empty ids and names are ignored rather than stored.
func (d *Directory) Remember(ctx context.Context, partnerID, name string) error {
	if partnerID == "" || name == "" {
		return nil
	}

	return d.repo.SaveName(ctx, partnerID, name)
}
