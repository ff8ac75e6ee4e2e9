package contributionmock

import (
	"context"

	domain "fundpool/internal/domain/contribution"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                       func(ctx context.Context, c *domain.Contribution) error
	GetByContributionIDFn          func(ctx context.Context, contributionID string) (*domain.Contribution, error)
	GetByContributionIDForUpdateFn func(ctx context.Context, contributionID string) (*domain.Contribution, error)
	ListByContributorIDFn          func(ctx context.Context, contributorID string) ([]*domain.Contribution, error)
	ListByStatusFn                 func(ctx context.Context, status domain.Status) ([]*domain.Contribution, error)
	SaveFn                         func(ctx context.Context, c *domain.Contribution) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Contribution) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByContributionID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	if m.GetByContributionIDFn != nil {
		return m.GetByContributionIDFn(ctx, contributionID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByContributionIDForUpdate(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	if m.GetByContributionIDForUpdateFn != nil {
		return m.GetByContributionIDForUpdateFn(ctx, contributionID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByContributorID(ctx context.Context, contributorID string) ([]*domain.Contribution, error) {
	if m.ListByContributorIDFn != nil {
		return m.ListByContributorIDFn(ctx, contributorID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Contribution, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Contribution) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
