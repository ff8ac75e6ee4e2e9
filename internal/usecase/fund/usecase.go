package fund

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundpool/internal/domain/fund"
)

type Usecase struct {
	repo fund.Repository
	now  func() time.Time
}

func NewUsecase(r fund.Repository) *Usecase {
	return &Usecase{repo: r, now: func() time.Time { return time.Now().UTC() }}
}

type BalanceDTO struct {
	TotalFunds         decimal.Decimal `json:"total_funds"`
	AvailableFunds     decimal.Decimal `json:"available_funds"`
	LoanedFunds        decimal.Decimal `json:"loaned_funds"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalRepayments    decimal.Decimal `json:"total_repayments"`
	LastUpdated        time.Time       `json:"last_updated"`
}

func (u *Usecase) Balance(ctx context.Context) (*BalanceDTO, error) {
	l, err := u.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fund.ErrNotFound
		}
		return nil, err
	}
	return &BalanceDTO{
		TotalFunds:         l.TotalFunds,
		AvailableFunds:     l.AvailableFunds,
		LoanedFunds:        l.LoanedFunds,
		TotalContributions: l.TotalContributions,
		TotalRepayments:    l.TotalRepayments,
		LastUpdated:        l.LastUpdated,
	}, nil
}

// Bootstrap creates the singleton ledger row if the system has never run.
// Safe to call on every startup.
func (u *Usecase) Bootstrap(ctx context.Context) error {
	_, err := u.repo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	log.Println("fund: initializing empty ledger")
	return u.repo.Create(ctx, &fund.Ledger{LastUpdated: u.now()})
}
