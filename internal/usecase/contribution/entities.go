package contribution

import (
	"time"

	"github.com/shopspring/decimal"

	"fundpool/internal/domain/contribution"
	"fundpool/internal/domain/identity"
	"fundpool/internal/domain/payment"
)

type SubmitInput struct {
	Actor identity.Actor
	// ContributorID is set when staff record a deposit on behalf of another
	// member; empty means the actor contributes for themselves.
	ContributorID string
	Amount        decimal.Decimal
	Type          contribution.Type
	PaymentMethod payment.Method
	ReceiptNumber string
	Description   string
}

type ContributionDTO struct {
	ContributionID string            `json:"contribution_id"`
	ContributorID  string            `json:"contributor_id"`
	RecordedBy     string            `json:"recorded_by,omitempty"`
	Amount         decimal.Decimal   `json:"amount"`
	Type           contribution.Type `json:"type"`
	PaymentMethod  payment.Method    `json:"payment_method"`
	ReceiptNumber  string            `json:"receipt_number,omitempty"`
	Description    string            `json:"description,omitempty"`
	Status         string            `json:"status"`
	ContributedAt  time.Time         `json:"contributed_at"`
	ProcessedAt    *time.Time        `json:"processed_at,omitempty"`
	ProcessedBy    *string           `json:"processed_by,omitempty"`
}

func toDTO(c *contribution.Contribution) *ContributionDTO {
	return &ContributionDTO{
		ContributionID: c.ContributionID,
		ContributorID:  c.ContributorID,
		RecordedBy:     c.RecordedBy,
		Amount:         c.Amount,
		Type:           c.Type,
		PaymentMethod:  c.PaymentMethod,
		ReceiptNumber:  c.ReceiptNumber,
		Description:    c.Description,
		Status:         string(c.Status),
		ContributedAt:  c.ContributedAt,
		ProcessedAt:    c.ProcessedAt,
		ProcessedBy:    c.ProcessedBy,
	}
}
