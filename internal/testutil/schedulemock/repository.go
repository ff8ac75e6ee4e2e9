package schedulemock

import (
	"context"
	"time"

	domain "fundpool/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	BulkCreateFn          func(ctx context.Context, entries []*domain.ScheduleEntry) error
	ListByLoanIDFn        func(ctx context.Context, loanID uint64) ([]*domain.ScheduleEntry, error)
	NextDueForUpdateFn    func(ctx context.Context, loanID uint64) (*domain.ScheduleEntry, error)
	CountUnpaidFn         func(ctx context.Context, loanID uint64) (int64, error)
	CountOverdueFn        func(ctx context.Context, loanID uint64) (int64, error)
	ListUnpaidDueBeforeFn func(ctx context.Context, cutoff time.Time) ([]*domain.ScheduleEntry, error)
	SaveFn                func(ctx context.Context, e *domain.ScheduleEntry) error
	DeleteByLoanIDFn      func(ctx context.Context, loanID uint64) error
}

func (m *Repo) BulkCreate(ctx context.Context, entries []*domain.ScheduleEntry) error {
	if m.BulkCreateFn != nil {
		return m.BulkCreateFn(ctx, entries)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]*domain.ScheduleEntry, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) NextDueForUpdate(ctx context.Context, loanID uint64) (*domain.ScheduleEntry, error) {
	if m.NextDueForUpdateFn != nil {
		return m.NextDueForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) CountUnpaid(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountUnpaidFn != nil {
		return m.CountUnpaidFn(ctx, loanID)
	}
	return 0, context.Canceled
}

func (m *Repo) CountOverdue(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountOverdueFn != nil {
		return m.CountOverdueFn(ctx, loanID)
	}
	return 0, context.Canceled
}

func (m *Repo) ListUnpaidDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.ScheduleEntry, error) {
	if m.ListUnpaidDueBeforeFn != nil {
		return m.ListUnpaidDueBeforeFn(ctx, cutoff)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, e *domain.ScheduleEntry) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}

func (m *Repo) DeleteByLoanID(ctx context.Context, loanID uint64) error {
	if m.DeleteByLoanIDFn != nil {
		return m.DeleteByLoanIDFn(ctx, loanID)
	}
	return nil
}
