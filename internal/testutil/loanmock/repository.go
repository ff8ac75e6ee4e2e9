package loanmock

import (
	"context"

	domain "fundpool/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                  func(ctx context.Context, l *domain.Loan) error
	GetByLoanNumberFn         func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetByLoanNumberForUpdFn   func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetByIDForUpdateFn        func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetLiveLoanByBorrowerIDFn func(ctx context.Context, borrowerID string) (*domain.Loan, error)
	ListByBorrowerIDFn        func(ctx context.Context, borrowerID string) ([]*domain.Loan, error)
	ListByStatusFn            func(ctx context.Context, statuses ...domain.Status) ([]*domain.Loan, error)
	CountByStatusFn           func(ctx context.Context) (map[domain.Status]int64, error)
	SaveFn                    func(ctx context.Context, l *domain.Loan) error
	DeleteFn                  func(ctx context.Context, l *domain.Loan, deletedBy string) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByLoanNumberFn != nil {
		return m.GetByLoanNumberFn(ctx, loanNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByLoanNumberForUpdFn != nil {
		return m.GetByLoanNumberForUpdFn(ctx, loanNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetLiveLoanByBorrowerID(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	if m.GetLiveLoanByBorrowerIDFn != nil {
		return m.GetLiveLoanByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID string) ([]*domain.Loan, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, statuses ...domain.Status) ([]*domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, statuses...)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, l *domain.Loan, deletedBy string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, l, deletedBy)
	}
	return nil
}
