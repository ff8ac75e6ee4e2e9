package contribution

import "context"

type Repository interface {
	Create(ctx context.Context, c *Contribution) error
	GetByContributionID(ctx context.Context, contributionID string) (*Contribution, error)
	// GetByContributionIDForUpdate locks the row for the current tx.
	GetByContributionIDForUpdate(ctx context.Context, contributionID string) (*Contribution, error)
	ListByContributorID(ctx context.Context, contributorID string) ([]*Contribution, error)
	ListByStatus(ctx context.Context, status Status) ([]*Contribution, error)
	Save(ctx context.Context, c *Contribution) error
}
