package fundmock

import (
	"context"

	domain "fundpool/internal/domain/fund"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetFn          func(ctx context.Context) (*domain.Ledger, error)
	GetForUpdateFn func(ctx context.Context) (*domain.Ledger, error)
	CreateFn       func(ctx context.Context, l *domain.Ledger) error
	SaveFn         func(ctx context.Context, l *domain.Ledger) error
}

func (m *Repo) Get(ctx context.Context) (*domain.Ledger, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) GetForUpdate(ctx context.Context) (*domain.Ledger, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Create(ctx context.Context, l *domain.Ledger) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Ledger) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
