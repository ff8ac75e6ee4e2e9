package uow

import (
	"context"

	"fundpool/internal/domain/contribution"
	"fundpool/internal/domain/fund"
	"fundpool/internal/domain/loan"
	"fundpool/internal/domain/payment"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Loans         loan.Repository
	Schedule      payment.Repository
	Contributions contribution.Repository
	Fund          fund.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn in a single transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then runs fn. Serializes all
	// mutations against one loan (payments, approvals) at loan granularity.
	WithinLoanTx(ctx context.Context, loanNumber string, fn func(r Repos, l *loan.Loan) error) error
}
