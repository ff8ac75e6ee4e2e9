package mysql

import (
	"context"

	"gorm.io/gorm"

	loanDomain "fundpool/internal/domain/loan"
	"fundpool/internal/domain/uow"
)

// GormUoW runs usecase functions inside one gorm transaction, handing them
// repositories bound to that transaction.
type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:         NewLoanRepository(tx),
		Schedule:      NewScheduleRepository(tx),
		Contributions: NewContributionRepository(tx),
		Fund:          NewFundRepository(tx),
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanNumber string, fn func(r uow.Repos, l *loanDomain.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := reposFor(tx)
		l, err := repos.Loans.GetByLoanNumberForUpdate(ctx, loanNumber)
		if err != nil {
			return err
		}
		return fn(repos, l)
	})
}
