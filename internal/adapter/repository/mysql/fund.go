package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fundpool/internal/domain/fund"
)

type FundRepository struct{ db *gorm.DB }

func NewFundRepository(db *gorm.DB) *FundRepository { return &FundRepository{db: db} }

func (r *FundRepository) Get(ctx context.Context) (*fund.Ledger, error) {
	var out fund.Ledger
	res := r.db.WithContext(ctx).Order("id ASC").First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *FundRepository) GetForUpdate(ctx context.Context) (*fund.Ledger, error) {
	var out fund.Ledger
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id ASC").
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *FundRepository) Create(ctx context.Context, l *fund.Ledger) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *FundRepository) Save(ctx context.Context, l *fund.Ledger) error {
	return r.db.WithContext(ctx).Save(l).Error
}
