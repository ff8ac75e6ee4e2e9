package contribution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fundpool/internal/domain/contribution"
	"fundpool/internal/domain/identity"
	"fundpool/internal/domain/payment"
	"fundpool/internal/domain/uow"
	"fundpool/pkg/id"
)

type Usecase struct {
	repo contribution.Repository
	uow  uow.UnitOfWork
	now  func() time.Time
}

func NewUsecase(r contribution.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// Submit records a pending deposit. Staff may record one on behalf of
// another member; the submitting staff identity is retained separately
// from the contributor's.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ContributionDTO, error) {
	if in.Actor.ID == "" {
		return nil, fmt.Errorf("%w: contributor identity is required", contribution.ErrValidation)
	}
	if in.Amount.LessThan(contribution.MinAmount) {
		return nil, fmt.Errorf("%w: minimum contribution is %s", contribution.ErrValidation, contribution.MinAmount)
	}
	if !contribution.KnownType(in.Type) {
		return nil, fmt.Errorf("%w: unknown contribution type %q", contribution.ErrValidation, in.Type)
	}
	if !payment.KnownMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", contribution.ErrValidation, in.PaymentMethod)
	}

	contributorID := in.Actor.ID
	recordedBy := ""
	if in.ContributorID != "" && in.ContributorID != in.Actor.ID {
		if !in.Actor.CanReview() {
			return nil, fmt.Errorf("%w: only staff may record a contribution for another member", contribution.ErrValidation)
		}
		contributorID = in.ContributorID
		recordedBy = in.Actor.ID
	}

	c := &contribution.Contribution{
		ContributionID: id.NewID32(),
		ContributorID:  contributorID,
		RecordedBy:     recordedBy,
		Amount:         in.Amount,
		Type:           in.Type,
		PaymentMethod:  in.PaymentMethod,
		ReceiptNumber:  in.ReceiptNumber,
		Description:    in.Description,
		Status:         contribution.StatusPending,
		ContributedAt:  u.now(),
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

// Approve credits the fund ledger with the deposit, atomically with the
// status flip. A contribution is processed at most once; the row lock and
// status guard make concurrent double-approval impossible.
func (u *Usecase) Approve(ctx context.Context, contributionID string, processor identity.Actor) (*ContributionDTO, error) {
	var dto *ContributionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contributions.GetByContributionIDForUpdate(ctx, contributionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return contribution.ErrNotFound
			}
			return err
		}
		if c.Status != contribution.StatusPending {
			return contribution.ErrInvalidTransition
		}

		now := u.now()
		led, err := r.Fund.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		led.CreditContribution(c.Amount, now)
		if err := r.Fund.Save(ctx, led); err != nil {
			return err
		}

		processorID := processor.ID
		c.Status = contribution.StatusApproved
		c.ProcessedAt = &now
		c.ProcessedBy = &processorID
		if err := r.Contributions.Save(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reject stamps the decision; the ledger is untouched.
func (u *Usecase) Reject(ctx context.Context, contributionID string, processor identity.Actor) (*ContributionDTO, error) {
	var dto *ContributionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contributions.GetByContributionIDForUpdate(ctx, contributionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return contribution.ErrNotFound
			}
			return err
		}
		if c.Status != contribution.StatusPending {
			return contribution.ErrInvalidTransition
		}
		now := u.now()
		processorID := processor.ID
		c.Status = contribution.StatusRejected
		c.ProcessedAt = &now
		c.ProcessedBy = &processorID
		if err := r.Contributions.Save(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, contributionID string) (*ContributionDTO, error) {
	c, err := u.repo.GetByContributionID(ctx, contributionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contribution.ErrNotFound
		}
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) ListByContributor(ctx context.Context, contributorID string) ([]*ContributionDTO, error) {
	cs, err := u.repo.ListByContributorID(ctx, contributorID)
	if err != nil {
		return nil, err
	}
	out := make([]*ContributionDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, toDTO(c))
	}
	return out, nil
}

func (u *Usecase) ListByStatus(ctx context.Context, status contribution.Status) ([]*ContributionDTO, error) {
	cs, err := u.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]*ContributionDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, toDTO(c))
	}
	return out, nil
}
