package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundpool/internal/domain/loan"
	"fundpool/internal/domain/payment"
	"fundpool/internal/domain/uow"
	"fundpool/pkg/id"
)

type Usecase struct {
	loanRepo  loan.Repository
	schedRepo payment.Repository
	uow       uow.UnitOfWork
	now       func() time.Time
}

func NewUsecase(loans loan.Repository, sched payment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loanRepo: loans, schedRepo: sched, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// Record applies a borrower payment to the loan's next due installment.
// The whole application runs with the loan row locked, so two concurrent
// payments can never both pick the same "next due" entry. Order of
// collection: late fee first, then principal/interest proportionally to
// the entry's own scheduled split. Partial payments stay on the same
// installment; nothing rolls forward while an earlier entry is unpaid.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*ReceiptDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", loan.ErrValidation)
	}
	if !payment.KnownMethod(in.Method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", loan.ErrValidation, in.Method)
	}

	var dto *ReceiptDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanNumber, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusActive && l.Status != loan.StatusOverdue {
			return loan.ErrInvalidTransition
		}

		e, err := r.Schedule.NextDueForUpdate(ctx, l.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payment.ErrNoDueInstallment
			}
			return err
		}

		now := u.now()
		owed := e.Outstanding()
		applied := decimal.Min(in.Amount, owed)
		change := in.Amount.Sub(applied)

		feePortion := decimal.Min(applied, e.FeeOutstanding())
		rest := applied.Sub(feePortion)

		var prinPortion decimal.Decimal
		installmentLeft := e.ScheduledAmount.Sub(e.PrincipalPaid).Sub(e.InterestPaid)
		if rest.IsPositive() {
			if rest.GreaterThanOrEqual(installmentLeft) {
				// Full cover: take the exact remainders so the split never
				// drifts from the scheduled one.
				prinPortion = e.ScheduledPrincipal.Sub(e.PrincipalPaid)
			} else {
				prinPortion = e.ScheduledPrincipal.Mul(rest).DivRound(e.ScheduledAmount, 2)
			}
			if prinPortion.IsNegative() {
				prinPortion = decimal.Zero
			}
			if prinPortion.GreaterThan(rest) {
				prinPortion = rest
			}
		}
		intPortion := rest.Sub(prinPortion)

		e.PaidAmount = e.PaidAmount.Add(applied)
		e.PrincipalPaid = e.PrincipalPaid.Add(prinPortion)
		e.InterestPaid = e.InterestPaid.Add(intPortion)
		e.Method = in.Method
		if in.ReceiptNumber != "" {
			e.ReceiptNumber = in.ReceiptNumber
		} else if e.ReceiptNumber == "" {
			e.ReceiptNumber = id.NewReceiptNumber()
		}
		if in.Notes != "" {
			e.Notes = in.Notes
		}
		if e.Settled() {
			e.Status = payment.StatusPaid
			e.PaidDate = &now
		}
		if err := r.Schedule.Save(ctx, e); err != nil {
			return err
		}

		// Balance tracks the installment debt, not fees.
		prevStatus := l.Status
		l.RemainingBalance = l.RemainingBalance.Sub(rest)
		if l.RemainingBalance.IsNegative() {
			l.RemainingBalance = decimal.Zero
		}

		if prinPortion.IsPositive() {
			led, err := r.Fund.GetForUpdate(ctx)
			if err != nil {
				return err
			}
			led.CreditRepayment(prinPortion, now)
			if err := r.Fund.Save(ctx, led); err != nil {
				return err
			}
		}

		if e.Status == payment.StatusPaid {
			unpaid, err := r.Schedule.CountUnpaid(ctx, l.ID)
			if err != nil {
				return err
			}
			if unpaid == 0 {
				l.Status = loan.StatusCompleted
				l.RemainingBalance = decimal.Zero
			} else if l.Status == loan.StatusOverdue {
				overdue, err := r.Schedule.CountOverdue(ctx, l.ID)
				if err != nil {
					return err
				}
				if overdue == 0 {
					l.Status = loan.StatusActive
				}
			}
		}
		if l.Status != prevStatus {
			l.StatusUpdatedAt = now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &ReceiptDTO{
			LoanNumber:       l.LoanNumber,
			PaymentNumber:    e.PaymentNumber,
			ReceiptNumber:    e.ReceiptNumber,
			AppliedAmount:    applied,
			LateFeePaid:      feePortion,
			PrincipalPaid:    prinPortion,
			InterestPaid:     intPortion,
			Change:           change,
			EntryStatus:      e.Status,
			LoanStatus:       string(l.Status),
			RemainingBalance: l.RemainingBalance,
			PaidDate:         e.PaidDate,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// ScheduleFor returns the loan's full installment schedule.
func (u *Usecase) ScheduleFor(ctx context.Context, loanNumber string) ([]*ScheduleEntryDTO, error) {
	l, err := u.loanRepo.GetByLoanNumber(ctx, loanNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	entries, err := u.schedRepo.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*ScheduleEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	return out, nil
}
