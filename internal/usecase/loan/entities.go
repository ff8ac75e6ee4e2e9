package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"fundpool/internal/domain/loan"
)

type ApplyInput struct {
	BorrowerID       string
	Category         loan.Category
	Principal        decimal.Decimal
	TermMonths       int
	Purpose          string
	Collateral       string
	RequirementFiles []loan.FileMeta
}

type LoanDTO struct {
	LoanNumber       string          `json:"loan_number"`
	BorrowerID       string          `json:"borrower_id"`
	ApproverID       *string         `json:"approver_id,omitempty"`
	Category         loan.Category   `json:"category"`
	Principal        decimal.Decimal `json:"principal"`
	RatePercent      decimal.Decimal `json:"rate_percent"`
	TermMonths       int             `json:"term_months"`
	InterestModel    string          `json:"interest_model"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	TotalPayable     decimal.Decimal `json:"total_payable"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Status           string          `json:"status"`
	Purpose          string          `json:"purpose"`
	Collateral       string          `json:"collateral,omitempty"`
	RequirementFiles []loan.FileMeta `json:"requirement_files,omitempty"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	RequestedAt      time.Time       `json:"requested_at"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	RejectedAt       *time.Time      `json:"rejected_at,omitempty"`
	StartDate        *time.Time      `json:"start_date,omitempty"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanNumber:       l.LoanNumber,
		BorrowerID:       l.BorrowerID,
		ApproverID:       l.ApproverID,
		Category:         l.Category,
		Principal:        l.Principal,
		RatePercent:      l.RatePercent,
		TermMonths:       l.TermMonths,
		InterestModel:    l.InterestModel,
		MonthlyPayment:   l.MonthlyPayment,
		TotalPayable:     l.TotalPayable,
		RemainingBalance: l.RemainingBalance,
		Status:           string(l.Status),
		Purpose:          l.Purpose,
		Collateral:       l.Collateral,
		RequirementFiles: l.RequirementFiles,
		RejectionReason:  l.RejectionReason,
		RequestedAt:      l.RequestedAt,
		ApprovedAt:       l.ApprovedAt,
		RejectedAt:       l.RejectedAt,
		StartDate:        l.StartDate,
		EndDate:          l.EndDate,
	}
}

// SweepResult summarizes one overdue sweep run.
type SweepResult struct {
	EntriesMarkedOverdue int `json:"entries_marked_overdue"`
	LoansMarkedOverdue   int `json:"loans_marked_overdue"`
	LoansDefaulted       int `json:"loans_defaulted"`
}
