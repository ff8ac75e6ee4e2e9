package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundpool/internal/domain/identity"
	"fundpool/internal/domain/loan"
	"fundpool/internal/domain/payment"
	"fundpool/internal/domain/uow"
	"fundpool/internal/loancalc"
	"fundpool/pkg/id"
)

// Options are the policy knobs the deployment configures.
type Options struct {
	// Model prices new applications; each loan stores the model it was
	// created with and keeps it forever.
	Model loancalc.Model
	// GracePeriodDays before a missed installment counts as overdue.
	GracePeriodDays int
	// DefaultOverdueThreshold: this many overdue installments at once
	// defaults the loan.
	DefaultOverdueThreshold int
	// LateFeeDailyRatePercent on the overdue amount per day past grace.
	LateFeeDailyRatePercent decimal.Decimal
}

type Usecase struct {
	repo loan.Repository
	uow  uow.UnitOfWork
	opts Options
	now  func() time.Time
}

func NewUsecase(r loan.Repository, tx uow.UnitOfWork, opts Options) *Usecase {
	return &Usecase{repo: r, uow: tx, opts: opts, now: func() time.Time { return time.Now().UTC() }}
}

// Apply validates a new application against the category policy, prices it
// and stores it as PENDING. The priced terms become the loan's authoritative
// terms; the schedule itself is only materialized at approval.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if in.BorrowerID == "" {
		return nil, fmt.Errorf("%w: borrower id is required", loan.ErrValidation)
	}
	if in.Principal.LessThan(loan.MinPrincipal) {
		return nil, fmt.Errorf("%w: minimum loan amount is %s", loan.ErrValidation, loan.MinPrincipal)
	}
	if in.TermMonths < 1 {
		return nil, fmt.Errorf("%w: term must be at least 1 month", loan.ErrValidation)
	}
	purpose := strings.TrimSpace(in.Purpose)
	if len(purpose) < 10 || len(purpose) > 500 {
		return nil, fmt.Errorf("%w: purpose must be 10-500 characters", loan.ErrValidation)
	}

	pol := loan.PolicyFor(in.Category)
	if in.Principal.GreaterThan(pol.MaxPrincipal) {
		return nil, fmt.Errorf("%w: maximum amount for %s is %s", loan.ErrPolicyViolation, in.Category, pol.MaxPrincipal)
	}
	if in.TermMonths > pol.MaxTermMonths {
		return nil, fmt.Errorf("%w: maximum term for %s is %d months", loan.ErrPolicyViolation, in.Category, pol.MaxTermMonths)
	}

	// At most one live loan per borrower.
	existing, err := u.repo.GetLiveLoanByBorrowerID(ctx, in.BorrowerID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", loan.ErrDuplicateActiveLoan, existing.LoanNumber)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	now := u.now()
	calc, err := loancalc.Compute(u.opts.Model, in.Principal, pol.RatePercent, in.TermMonths, now)
	if err != nil {
		return nil, err
	}

	l := &loan.Loan{
		LoanNumber:       id.NewLoanNumber(now),
		BorrowerID:       in.BorrowerID,
		Category:         in.Category,
		Principal:        in.Principal,
		RatePercent:      pol.RatePercent,
		TermMonths:       in.TermMonths,
		InterestModel:    string(u.opts.Model),
		MonthlyPayment:   calc.MonthlyPayment,
		TotalPayable:     calc.TotalAmount,
		RemainingBalance: calc.TotalAmount,
		Status:           loan.StatusPending,
		Purpose:          purpose,
		Collateral:       strings.TrimSpace(in.Collateral),
		RequirementFiles: in.RequirementFiles,
		RequestedAt:      now,
		StatusUpdatedAt:  now,
	}

	// The random suffix can collide within a day; retry with a fresh number.
	createErr := u.repo.Create(ctx, l)
	for attempt := 0; attempt < 2 && errors.Is(createErr, gorm.ErrDuplicatedKey); attempt++ {
		l.LoanNumber = id.NewLoanNumber(now)
		createErr = u.repo.Create(ctx, l)
	}
	if createErr != nil {
		return nil, createErr
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanNumber string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanNumber(ctx, loanNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID string) ([]*LoanDTO, error) {
	ls, err := u.repo.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	out := make([]*LoanDTO, 0, len(ls))
	for _, l := range ls {
		out = append(out, toDTO(l))
	}
	return out, nil
}

func (u *Usecase) ListByStatus(ctx context.Context, statuses ...loan.Status) ([]*LoanDTO, error) {
	ls, err := u.repo.ListByStatus(ctx, statuses...)
	if err != nil {
		return nil, err
	}
	out := make([]*LoanDTO, 0, len(ls))
	for _, l := range ls {
		out = append(out, toDTO(l))
	}
	return out, nil
}

// Summary reports how many loans sit in each status.
func (u *Usecase) Summary(ctx context.Context) (map[loan.Status]int64, error) {
	return u.repo.CountByStatus(ctx)
}

// SetUnderReview moves a PENDING application into review. No financial
// effect; the status guard holds even if the caller skipped its role check.
func (u *Usecase) SetUnderReview(ctx context.Context, loanNumber string, reviewer identity.Actor) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusPending {
			return loan.ErrInvalidTransition
		}
		l.Status = loan.StatusUnderReview
		l.StatusUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return dto, nil
}

// Approve disburses the loan: re-checks funds under the ledger row lock,
// debits the pool, materializes the full schedule and flips the loan to
// ACTIVE — all in one transaction, so a failure at any step leaves the
// ledger, the schedule and the loan exactly as they were.
func (u *Usecase) Approve(ctx context.Context, loanNumber string, approver identity.Actor) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanNumberForUpdate(ctx, loanNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrNotFound
			}
			return err
		}
		if !l.Status.Reviewable() {
			if l.Status == loan.StatusApproved || l.Status == loan.StatusActive {
				return loan.ErrAlreadyApproved
			}
			return loan.ErrInvalidTransition
		}

		now := u.now()

		led, err := r.Fund.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if err := led.DebitForLoan(l.Principal, now); err != nil {
			// fund.ErrInsufficientFunds; rollback leaves the loan reviewable
			return err
		}
		if err := r.Fund.Save(ctx, led); err != nil {
			return err
		}

		model, err := loancalc.ParseModel(l.InterestModel)
		if err != nil {
			model = u.opts.Model
		}
		calc, err := loancalc.Compute(model, l.Principal, l.RatePercent, l.TermMonths, now)
		if err != nil {
			return err
		}
		entries := make([]*payment.ScheduleEntry, 0, len(calc.Schedule))
		for _, inst := range calc.Schedule {
			entries = append(entries, &payment.ScheduleEntry{
				LoanID:             l.ID,
				PayerID:            l.BorrowerID,
				PaymentNumber:      inst.Number,
				ScheduledDate:      inst.DueDate,
				ScheduledAmount:    inst.Amount,
				ScheduledPrincipal: inst.Principal,
				ScheduledInterest:  inst.Interest,
				Status:             payment.StatusPending,
			})
		}
		if err := r.Schedule.BulkCreate(ctx, entries); err != nil {
			return err
		}

		approvedAt := now
		start := now
		end := now.AddDate(0, l.TermMonths, 0)
		approverID := approver.ID
		l.Status = loan.StatusActive
		l.ApproverID = &approverID
		l.ApprovedAt = &approvedAt
		l.StartDate = &start
		l.EndDate = &end
		l.MonthlyPayment = calc.MonthlyPayment
		l.TotalPayable = calc.TotalAmount
		l.RemainingBalance = calc.TotalAmount
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reject closes a reviewable application with a reason. No ledger effect.
func (u *Usecase) Reject(ctx context.Context, loanNumber, reason string, reviewer identity.Actor) (*LoanDTO, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < 10 {
		return nil, fmt.Errorf("%w: rejection reason must be at least 10 characters", loan.ErrValidation)
	}
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.Reviewable() {
			return loan.ErrInvalidTransition
		}
		now := u.now()
		l.Status = loan.StatusRejected
		l.RejectionReason = reason
		l.RejectedAt = &now
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return dto, nil
}

// Cancel withdraws an application that never touched the ledger.
func (u *Usecase) Cancel(ctx context.Context, loanNumber string, actor identity.Actor) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.CanTransitionTo(loan.StatusCancelled) {
			return loan.ErrInvalidTransition
		}
		l.Status = loan.StatusCancelled
		l.StatusUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return dto, nil
}

// Delete removes a pre-disbursement loan and its (necessarily empty)
// schedule in one transaction. Loans that have touched the ledger are
// never deletable.
func (u *Usecase) Delete(ctx context.Context, loanNumber string, actor identity.Actor) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanNumberForUpdate(ctx, loanNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrNotFound
			}
			return err
		}
		if !l.Status.Deletable() {
			return loan.ErrInvalidTransition
		}
		if err := r.Schedule.DeleteByLoanID(ctx, l.ID); err != nil {
			return err
		}
		return r.Loans.Delete(ctx, l, actor.ID)
	})
	return err
}

// SweepOverdue marks installments past grace as OVERDUE, assesses late
// fees, and defaults loans whose overdue count reaches the threshold.
// Intended to run periodically (cron or an ops endpoint).
func (u *Usecase) SweepOverdue(ctx context.Context) (*SweepResult, error) {
	res := &SweepResult{}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		now := u.now()
		cutoff := now.AddDate(0, 0, -u.opts.GracePeriodDays)
		entries, err := r.Schedule.ListUnpaidDueBefore(ctx, cutoff)
		if err != nil {
			return err
		}

		touched := make(map[uint64]struct{})
		for _, e := range entries {
			days := loancalc.DaysOverdue(e.ScheduledDate, u.opts.GracePeriodDays, now)
			if days == 0 {
				continue
			}
			if e.Status == payment.StatusPending {
				e.Status = payment.StatusOverdue
				res.EntriesMarkedOverdue++
			}
			// Recomputed each sweep; grows with the day count.
			outstanding := e.ScheduledAmount.Sub(e.PrincipalPaid).Sub(e.InterestPaid)
			e.LateFee = loancalc.LateFee(outstanding, days, u.opts.LateFeeDailyRatePercent)
			if err := r.Schedule.Save(ctx, e); err != nil {
				return err
			}
			touched[e.LoanID] = struct{}{}
		}

		for loanID := range touched {
			l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			overdue, err := r.Schedule.CountOverdue(ctx, loanID)
			if err != nil {
				return err
			}
			changed := false
			if l.Status == loan.StatusActive {
				l.Status = loan.StatusOverdue
				res.LoansMarkedOverdue++
				changed = true
			}
			if l.Status == loan.StatusOverdue && int(overdue) >= u.opts.DefaultOverdueThreshold {
				l.Status = loan.StatusDefaulted
				res.LoansDefaulted++
				changed = true
			}
			if changed {
				l.StatusUpdatedAt = now
				if err := r.Loans.Save(ctx, l); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}
