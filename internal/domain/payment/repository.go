package payment

import (
	"context"
	"time"
)

type Repository interface {
	BulkCreate(ctx context.Context, entries []*ScheduleEntry) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]*ScheduleEntry, error)
	// NextDueForUpdate returns the lowest-numbered unpaid entry of the loan,
	// locked for the current tx. ErrNoDueInstallment when everything is paid.
	NextDueForUpdate(ctx context.Context, loanID uint64) (*ScheduleEntry, error)
	CountUnpaid(ctx context.Context, loanID uint64) (int64, error)
	CountOverdue(ctx context.Context, loanID uint64) (int64, error)
	// ListUnpaidDueBefore returns PENDING and OVERDUE entries scheduled
	// strictly before the cutoff, for the overdue sweep.
	ListUnpaidDueBefore(ctx context.Context, cutoff time.Time) ([]*ScheduleEntry, error)
	Save(ctx context.Context, e *ScheduleEntry) error
	DeleteByLoanID(ctx context.Context, loanID uint64) error
}
