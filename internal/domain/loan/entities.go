package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("loan not found")
	ErrValidation          = errors.New("invalid input")
	ErrPolicyViolation     = errors.New("loan policy violation")
	ErrDuplicateActiveLoan = errors.New("borrower already has a live loan")
	ErrInvalidTransition   = errors.New("invalid loan state transition")
	ErrAlreadyApproved     = errors.New("loan already approved")
)

type Status string

const (
	StatusPending     Status = "PENDING"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusActive      Status = "ACTIVE"
	StatusCompleted   Status = "COMPLETED"
	StatusOverdue     Status = "OVERDUE"
	StatusDefaulted   Status = "DEFAULTED"
	StatusRejected    Status = "REJECTED"
	StatusCancelled   Status = "CANCELLED"
)

// transitions is the full lifecycle map. APPROVED is transient: Approve
// flips PENDING/UNDER_REVIEW through APPROVED to ACTIVE inside one
// transaction, so a loan is never persisted as APPROVED without a schedule.
var transitions = map[Status][]Status{
	StatusPending:     {StatusUnderReview, StatusApproved, StatusRejected, StatusCancelled},
	StatusUnderReview: {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:    {StatusActive},
	StatusActive:      {StatusCompleted, StatusOverdue},
	StatusOverdue:     {StatusActive, StatusCompleted, StatusDefaulted},
	StatusRejected:    {StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Reviewable statuses may still be approved or rejected.
func (s Status) Reviewable() bool {
	return s == StatusPending || s == StatusUnderReview
}

// Deletable statuses have never touched the fund ledger.
func (s Status) Deletable() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Disbursed statuses carry money owed against the ledger.
func (s Status) Disbursed() bool {
	switch s {
	case StatusActive, StatusOverdue, StatusCompleted, StatusDefaulted:
		return true
	}
	return false
}

// LiveStatuses block a borrower from opening another loan.
func LiveStatuses() []Status {
	return []Status{StatusPending, StatusUnderReview, StatusApproved, StatusActive, StatusOverdue}
}

// FileMeta is opaque metadata for an uploaded requirement document. The
// engine stores and returns it; content validation lives in the upload
// collaborator.
type FileMeta struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
	Path         string `json:"path"`
}

type Loan struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanNumber       string          `gorm:"size:16;uniqueIndex:ux_loans_number_active" json:"loan_number"`
	BorrowerID       string          `gorm:"size:32;index:idx_loans_borrower_status" json:"borrower_id"`
	ApproverID       *string         `gorm:"size:32" json:"approver_id,omitempty"`
	Category         Category        `gorm:"size:16" json:"category"`
	Principal        decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal"`
	RatePercent      decimal.Decimal `gorm:"type:decimal(6,3)" json:"rate_percent"`
	TermMonths       int             `json:"term_months"`
	InterestModel    string          `gorm:"size:16" json:"interest_model"`
	MonthlyPayment   decimal.Decimal `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	TotalPayable     decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_payable"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(18,2)" json:"remaining_balance"`
	Status           Status          `gorm:"size:16;index:idx_loans_borrower_status;default:'PENDING'" json:"status"`
	Purpose          string          `gorm:"size:500" json:"purpose"`
	Collateral       string          `gorm:"size:500" json:"collateral,omitempty"`
	RequirementFiles []FileMeta      `gorm:"serializer:json;type:text" json:"requirement_files,omitempty"`
	RejectionReason  string          `gorm:"size:500" json:"rejection_reason,omitempty"`
	RequestedAt      time.Time       `json:"requested_at"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	RejectedAt       *time.Time      `json:"rejected_at,omitempty"`
	StartDate        *time.Time      `json:"start_date,omitempty"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	StatusUpdatedAt  time.Time       `json:"status_updated_at"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
	DeletedBy        string          `gorm:"size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }
