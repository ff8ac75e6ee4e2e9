package contribution

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundpool/internal/domain/payment"
)

var (
	ErrNotFound          = errors.New("contribution not found")
	ErrValidation        = errors.New("invalid contribution input")
	ErrInvalidTransition = errors.New("contribution already processed")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Type string

const (
	TypeInitialCapital    Type = "INITIAL_CAPITAL"
	TypeMonthlySavings    Type = "MONTHLY_SAVINGS"
	TypeVoluntary         Type = "VOLUNTARY"
	TypeProfitSharing     Type = "PROFIT_SHARING"
	TypeSpecialAssessment Type = "SPECIAL_ASSESSMENT"
)

func KnownType(t Type) bool {
	switch t {
	case TypeInitialCapital, TypeMonthlySavings, TypeVoluntary, TypeProfitSharing, TypeSpecialAssessment:
		return true
	}
	return false
}

// MinAmount is the smallest accepted deposit.
var MinAmount = decimal.NewFromInt(100)

// Contribution is a member's capital deposit into the shared fund. It is
// mutated exactly once, by an approve/reject decision, and the fund ledger
// is credited only on approval. ContributorID and RecordedBy differ when
// staff enter a deposit on a member's behalf; ProcessedBy is always the
// reviewer who decided it.
type Contribution struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	ContributionID string          `gorm:"type:char(32);not null;uniqueIndex:ux_contributions_public_id" json:"contribution_id"`
	ContributorID  string          `gorm:"size:32;not null;index" json:"contributor_id"`
	RecordedBy     string          `gorm:"size:32" json:"recorded_by,omitempty"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Type           Type            `gorm:"size:24" json:"type"`
	PaymentMethod  payment.Method  `gorm:"size:16" json:"payment_method"`
	ReceiptNumber  string          `gorm:"size:32" json:"receipt_number,omitempty"`
	Description    string          `gorm:"size:500" json:"description,omitempty"`
	Status         Status          `gorm:"size:16;default:'PENDING'" json:"status"`
	ContributedAt  time.Time       `json:"contributed_at"`
	ProcessedAt    *time.Time      `json:"processed_at,omitempty"`
	ProcessedBy    *string         `gorm:"size:32" json:"processed_by,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Contribution) TableName() string { return "contributions" }
