package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanNumber(ctx context.Context, loanNumber string) (*Loan, error)
	// GetByLoanNumberForUpdate locks the loan row for the current tx.
	GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*Loan, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	// GetLiveLoanByBorrowerID returns any loan of the borrower whose status
	// blocks a new application (see LiveStatuses).
	GetLiveLoanByBorrowerID(ctx context.Context, borrowerID string) (*Loan, error)
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]*Loan, error)
	ListByStatus(ctx context.Context, statuses ...Status) ([]*Loan, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	Save(ctx context.Context, l *Loan) error
	// Delete soft-deletes the loan, stamping who removed it.
	Delete(ctx context.Context, l *Loan, deletedBy string) error
}
