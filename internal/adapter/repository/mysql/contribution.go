package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fundpool/internal/domain/contribution"
)

type ContributionRepository struct{ db *gorm.DB }

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

func (r *ContributionRepository) Create(ctx context.Context, c *contribution.Contribution) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContributionRepository) Save(ctx context.Context, c *contribution.Contribution) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContributionRepository) GetByContributionID(ctx context.Context, contributionID string) (*contribution.Contribution, error) {
	var out contribution.Contribution
	res := r.db.WithContext(ctx).Where("contribution_id = ?", contributionID).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *ContributionRepository) GetByContributionIDForUpdate(ctx context.Context, contributionID string) (*contribution.Contribution, error) {
	var out contribution.Contribution
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("contribution_id = ?", contributionID).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *ContributionRepository) ListByContributorID(ctx context.Context, contributorID string) ([]*contribution.Contribution, error) {
	var out []*contribution.Contribution
	res := r.db.WithContext(ctx).
		Where("contributor_id = ?", contributorID).
		Order("contributed_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ContributionRepository) ListByStatus(ctx context.Context, status contribution.Status) ([]*contribution.Contribution, error) {
	var out []*contribution.Contribution
	res := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("contributed_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
