package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"fundpool/internal/domain/identity"
	"fundpool/internal/domain/payment"
)

type RecordInput struct {
	LoanNumber    string
	Amount        decimal.Decimal
	Method        payment.Method
	ReceiptNumber string
	Notes         string
	Payer         identity.Actor
}

// ReceiptDTO describes how one recorded payment was applied.
type ReceiptDTO struct {
	LoanNumber       string          `json:"loan_number"`
	PaymentNumber    int             `json:"payment_number"`
	ReceiptNumber    string          `json:"receipt_number"`
	AppliedAmount    decimal.Decimal `json:"applied_amount"`
	LateFeePaid      decimal.Decimal `json:"late_fee_paid"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	Change           decimal.Decimal `json:"change"`
	EntryStatus      payment.Status  `json:"entry_status"`
	LoanStatus       string          `json:"loan_status"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaidDate         *time.Time      `json:"paid_date,omitempty"`
}

type ScheduleEntryDTO struct {
	PaymentNumber      int             `json:"payment_number"`
	ScheduledDate      time.Time       `json:"scheduled_date"`
	ScheduledAmount    decimal.Decimal `json:"scheduled_amount"`
	ScheduledPrincipal decimal.Decimal `json:"scheduled_principal"`
	ScheduledInterest  decimal.Decimal `json:"scheduled_interest"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	PrincipalPaid      decimal.Decimal `json:"principal_paid"`
	InterestPaid       decimal.Decimal `json:"interest_paid"`
	LateFee            decimal.Decimal `json:"late_fee"`
	Status             payment.Status  `json:"status"`
	PaidDate           *time.Time      `json:"paid_date,omitempty"`
	Method             payment.Method  `json:"method,omitempty"`
	ReceiptNumber      string          `json:"receipt_number,omitempty"`
}

func toEntryDTO(e *payment.ScheduleEntry) *ScheduleEntryDTO {
	return &ScheduleEntryDTO{
		PaymentNumber:      e.PaymentNumber,
		ScheduledDate:      e.ScheduledDate,
		ScheduledAmount:    e.ScheduledAmount,
		ScheduledPrincipal: e.ScheduledPrincipal,
		ScheduledInterest:  e.ScheduledInterest,
		PaidAmount:         e.PaidAmount,
		PrincipalPaid:      e.PrincipalPaid,
		InterestPaid:       e.InterestPaid,
		LateFee:            e.LateFee,
		Status:             e.Status,
		PaidDate:           e.PaidDate,
		Method:             e.Method,
		ReceiptNumber:      e.ReceiptNumber,
	}
}
