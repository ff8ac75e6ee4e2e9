package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("schedule entry not found")
	ErrNoDueInstallment = errors.New("no due installment")
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusOverdue Status = "OVERDUE"
)

type Method string

const (
	MethodCash          Method = "CASH"
	MethodBankTransfer  Method = "BANK_TRANSFER"
	MethodGcash         Method = "GCASH"
	MethodPaymaya       Method = "PAYMAYA"
	MethodCheck         Method = "CHECK"
	MethodOnlineBanking Method = "ONLINE_BANKING"
)

func KnownMethod(m Method) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodGcash, MethodPaymaya, MethodCheck, MethodOnlineBanking:
		return true
	}
	return false
}

// ScheduleEntry is one installment of a loan. Rows are created in bulk at
// approval and mutated only by payment recording and the overdue sweep, in
// ascending PaymentNumber order.
type ScheduleEntry struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID             uint64          `gorm:"not null;index;uniqueIndex:ux_schedule_loan_number" json:"-"`
	PayerID            string          `gorm:"size:32" json:"payer_id"`
	PaymentNumber      int             `gorm:"not null;uniqueIndex:ux_schedule_loan_number" json:"payment_number"`
	ScheduledDate      time.Time       `json:"scheduled_date"`
	ScheduledAmount    decimal.Decimal `gorm:"type:decimal(18,2)" json:"scheduled_amount"`
	ScheduledPrincipal decimal.Decimal `gorm:"type:decimal(18,2)" json:"scheduled_principal"`
	ScheduledInterest  decimal.Decimal `gorm:"type:decimal(18,2)" json:"scheduled_interest"`
	PaidAmount         decimal.Decimal `gorm:"type:decimal(18,2)" json:"paid_amount"`
	PrincipalPaid      decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal_paid"`
	InterestPaid       decimal.Decimal `gorm:"type:decimal(18,2)" json:"interest_paid"`
	LateFee            decimal.Decimal `gorm:"type:decimal(18,2)" json:"late_fee"`
	Status             Status          `gorm:"size:16;default:'PENDING'" json:"status"`
	PaidDate           *time.Time      `json:"paid_date,omitempty"`
	Method             Method          `gorm:"size:16" json:"method,omitempty"`
	ReceiptNumber      string          `gorm:"size:32" json:"receipt_number,omitempty"`
	Notes              string          `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduleEntry) TableName() string { return "loan_payments" }

// Outstanding is what remains owed on this entry including its late fee.
func (e *ScheduleEntry) Outstanding() decimal.Decimal {
	out := e.ScheduledAmount.Add(e.LateFee).Sub(e.PaidAmount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// FeeOutstanding is the unpaid part of the late fee. Fees are collected
// before principal/interest, so the fee paid so far is whatever of
// PaidAmount is not attributed to principal or interest.
func (e *ScheduleEntry) FeeOutstanding() decimal.Decimal {
	feePaid := e.PaidAmount.Sub(e.PrincipalPaid).Sub(e.InterestPaid)
	out := e.LateFee.Sub(feePaid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// Settled reports whether the entry is fully covered, fee included.
func (e *ScheduleEntry) Settled() bool {
	return e.PaidAmount.GreaterThanOrEqual(e.ScheduledAmount.Add(e.LateFee))
}
