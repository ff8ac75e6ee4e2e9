package fund

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("fund ledger not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Ledger is the single aggregate tracking the community fund pool. Exactly
// one row exists; every mutation happens through the methods below while
// the row is locked, preserving available + loaned == total.
type Ledger struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	TotalFunds         decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_funds"`
	AvailableFunds     decimal.Decimal `gorm:"type:decimal(18,2)" json:"available_funds"`
	LoanedFunds        decimal.Decimal `gorm:"type:decimal(18,2)" json:"loaned_funds"`
	TotalContributions decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_contributions"`
	TotalRepayments    decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_repayments"`
	LastUpdated        time.Time       `json:"last_updated"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"-"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Ledger) TableName() string { return "fund_ledger" }

// CreditContribution records an approved member deposit.
func (l *Ledger) CreditContribution(amount decimal.Decimal, now time.Time) {
	l.TotalFunds = l.TotalFunds.Add(amount)
	l.AvailableFunds = l.AvailableFunds.Add(amount)
	l.TotalContributions = l.TotalContributions.Add(amount)
	l.LastUpdated = now
}

// DebitForLoan moves capital from available to loaned for a disbursement.
// Fails without touching the ledger when available funds cannot cover it.
func (l *Ledger) DebitForLoan(amount decimal.Decimal, now time.Time) error {
	if l.AvailableFunds.LessThan(amount) {
		return ErrInsufficientFunds
	}
	l.AvailableFunds = l.AvailableFunds.Sub(amount)
	l.LoanedFunds = l.LoanedFunds.Add(amount)
	l.LastUpdated = now
	return nil
}

// CreditRepayment returns repaid principal to the available pool. Loaned
// funds floor at zero when late fees push a repayment past the outstanding
// principal.
func (l *Ledger) CreditRepayment(amount decimal.Decimal, now time.Time) {
	l.AvailableFunds = l.AvailableFunds.Add(amount)
	l.LoanedFunds = l.LoanedFunds.Sub(amount)
	if l.LoanedFunds.IsNegative() {
		// The overshoot is earned income, not outstanding principal.
		l.TotalFunds = l.TotalFunds.Sub(l.LoanedFunds)
		l.LoanedFunds = decimal.Zero
	}
	l.TotalRepayments = l.TotalRepayments.Add(amount)
	l.LastUpdated = now
}

// Consistent reports whether available + loaned == total holds.
func (l *Ledger) Consistent() bool {
	return l.AvailableFunds.Add(l.LoanedFunds).Equal(l.TotalFunds)
}
