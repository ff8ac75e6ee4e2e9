package loan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundpool/internal/domain/fund"
	"fundpool/internal/domain/identity"
	domain "fundpool/internal/domain/loan"
	paymentDomain "fundpool/internal/domain/payment"
	"fundpool/internal/domain/uow"
	"fundpool/internal/loancalc"
	"fundpool/internal/testutil/fundmock"
	"fundpool/internal/testutil/loanmock"
	"fundpool/internal/testutil/schedulemock"
	"fundpool/internal/testutil/uowmock"
)

func testOptions() Options {
	return Options{
		Model:                   loancalc.ModelAmortizing,
		GracePeriodDays:         5,
		DefaultOverdueThreshold: 3,
		LateFeeDailyRatePercent: decimal.RequireFromString("0.05"),
	}
}

func noLiveLoan(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	return nil, gorm.ErrRecordNotFound
}

func validApply() ApplyInput {
	return ApplyInput{
		BorrowerID: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Category:   domain.CategoryPersonal,
		Principal:  decimal.NewFromInt(50_000),
		TermMonths: 12,
		Purpose:    "working capital for a sari-sari store",
	}
}

func TestApply_Success(t *testing.T) {
	var created *domain.Loan
	repo := &loanmock.Repo{
		GetLiveLoanByBorrowerIDFn: noLiveLoan,
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			created = l
			return nil
		},
	}
	uc := NewUsecase(repo, uowmock.New(), testOptions())

	dto, err := uc.Apply(context.Background(), validApply())
	if err != nil {
		t.Fatalf("Apply err: %v", err)
	}
	if created == nil {
		t.Fatalf("loan not persisted")
	}
	if !strings.HasPrefix(dto.LoanNumber, "LN") || len(dto.LoanNumber) != 12 {
		t.Errorf("loan number format: %q", dto.LoanNumber)
	}
	if dto.Status != string(domain.StatusPending) {
		t.Errorf("status=%s", dto.Status)
	}
	// PERSONAL carries 12% a year; pricing is stored on the application.
	if !dto.RatePercent.Equal(decimal.NewFromInt(12)) {
		t.Errorf("rate=%s", dto.RatePercent)
	}
	if dto.MonthlyPayment.StringFixed(2) != "4442.44" {
		t.Errorf("monthly=%s", dto.MonthlyPayment)
	}
	if dto.TotalPayable.StringFixed(2) != "53309.28" {
		t.Errorf("total=%s", dto.TotalPayable)
	}
	if !dto.RemainingBalance.Equal(dto.TotalPayable) {
		t.Errorf("remaining=%s", dto.RemainingBalance)
	}
	if dto.InterestModel != "amortizing" {
		t.Errorf("model=%s", dto.InterestModel)
	}
}

func TestApply_Validation(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{GetLiveLoanByBorrowerIDFn: noLiveLoan}, uowmock.New(), testOptions())

	cases := map[string]func(*ApplyInput){
		"missing borrower": func(in *ApplyInput) { in.BorrowerID = "" },
		"below minimum":    func(in *ApplyInput) { in.Principal = decimal.NewFromInt(999) },
		"zero term":        func(in *ApplyInput) { in.TermMonths = 0 },
		"short purpose":    func(in *ApplyInput) { in.Purpose = "too short" },
		"purpose whitespace only": func(in *ApplyInput) {
			in.Purpose = "        \t\t        "
		},
	}
	for name, mutate := range cases {
		in := validApply()
		mutate(&in)
		if _, err := uc.Apply(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: want ErrValidation, got %v", name, err)
		}
	}
}

func TestApply_PolicyViolation(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{GetLiveLoanByBorrowerIDFn: noLiveLoan}, uowmock.New(), testOptions())

	over := validApply()
	over.Principal = decimal.NewFromInt(500_001)
	if _, err := uc.Apply(context.Background(), over); !errors.Is(err, domain.ErrPolicyViolation) {
		t.Errorf("principal cap: want ErrPolicyViolation, got %v", err)
	}

	long := validApply()
	long.TermMonths = 37
	if _, err := uc.Apply(context.Background(), long); !errors.Is(err, domain.ErrPolicyViolation) {
		t.Errorf("term cap: want ErrPolicyViolation, got %v", err)
	}

	// EMERGENCY caps lower than PERSONAL.
	em := validApply()
	em.Category = domain.CategoryEmergency
	em.Principal = decimal.NewFromInt(150_000)
	if _, err := uc.Apply(context.Background(), em); !errors.Is(err, domain.ErrPolicyViolation) {
		t.Errorf("emergency cap: want ErrPolicyViolation, got %v", err)
	}
}

func TestApply_Rejects_WhenLiveLoanExists(t *testing.T) {
	repo := &loanmock.Repo{
		GetLiveLoanByBorrowerIDFn: func(ctx context.Context, borrowerID string) (*domain.Loan, error) {
			return &domain.Loan{LoanNumber: "LN2601010001", BorrowerID: borrowerID, Status: domain.StatusActive}, nil
		},
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			t.Fatalf("Create must not be called when a live loan exists")
			return nil
		},
	}
	uc := NewUsecase(repo, uowmock.New(), testOptions())

	_, err := uc.Apply(context.Background(), validApply())
	if !errors.Is(err, domain.ErrDuplicateActiveLoan) {
		t.Fatalf("want ErrDuplicateActiveLoan, got %v", err)
	}
}

func TestApply_RetriesOnDuplicateLoanNumber(t *testing.T) {
	attempts := 0
	repo := &loanmock.Repo{
		GetLiveLoanByBorrowerIDFn: noLiveLoan,
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			attempts++
			if attempts == 1 {
				return gorm.ErrDuplicatedKey
			}
			return nil
		},
	}
	uc := NewUsecase(repo, uowmock.New(), testOptions())

	if _, err := uc.Apply(context.Background(), validApply()); err != nil {
		t.Fatalf("Apply err: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected retry after duplicate number, attempts=%d", attempts)
	}
}

func approvalRepos(l *domain.Loan, led *fund.Ledger) (uow.Repos, *loanmock.Repo, *schedulemock.Repo, *fundmock.Repo) {
	loans := &loanmock.Repo{
		GetByLoanNumberForUpdFn: func(ctx context.Context, loanNumber string) (*domain.Loan, error) {
			if l == nil || l.LoanNumber != loanNumber {
				return nil, gorm.ErrRecordNotFound
			}
			return l, nil
		},
	}
	sched := &schedulemock.Repo{}
	funds := &fundmock.Repo{
		GetForUpdateFn: func(ctx context.Context) (*fund.Ledger, error) { return led, nil },
	}
	repos := uow.Repos{Loans: loans, Schedule: sched, Fund: funds}
	return repos, loans, sched, funds
}

func makePendingLoan() *domain.Loan {
	return &domain.Loan{
		ID:            7,
		LoanNumber:    "LN2601150042",
		BorrowerID:    "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Category:      domain.CategoryEmergency,
		Principal:     decimal.NewFromInt(10_000),
		RatePercent:   decimal.NewFromInt(10),
		TermMonths:    6,
		InterestModel: "flat",
		Status:        domain.StatusPending,
	}
}

func TestApprove_Success(t *testing.T) {
	l := makePendingLoan()
	led := &fund.Ledger{
		TotalFunds:     decimal.NewFromInt(50_000),
		AvailableFunds: decimal.NewFromInt(50_000),
	}
	repos, _, sched, funds := approvalRepos(l, led)

	var createdEntries []*paymentDomain.ScheduleEntry
	sched.BulkCreateFn = func(ctx context.Context, entries []*paymentDomain.ScheduleEntry) error {
		createdEntries = entries
		return nil
	}
	ledgerSaved := false
	funds.SaveFn = func(ctx context.Context, got *fund.Ledger) error {
		ledgerSaved = true
		return nil
	}

	uc := NewUsecase(&loanmock.Repo{}, uowmock.Passthrough(repos), testOptions())
	approver := identity.Actor{ID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: identity.RoleManager}

	dto, err := uc.Approve(context.Background(), l.LoanNumber, approver)
	if err != nil {
		t.Fatalf("Approve err: %v", err)
	}
	if dto.Status != string(domain.StatusActive) {
		t.Errorf("status=%s", dto.Status)
	}
	if dto.ApproverID == nil || *dto.ApproverID != approver.ID {
		t.Errorf("approver not stamped: %+v", dto.ApproverID)
	}
	if dto.StartDate == nil || dto.EndDate == nil {
		t.Fatalf("start/end dates not set")
	}

	// The pool moved the principal from available to loaned.
	if !ledgerSaved {
		t.Fatalf("ledger not saved")
	}
	if !led.AvailableFunds.Equal(decimal.NewFromInt(40_000)) || !led.LoanedFunds.Equal(decimal.NewFromInt(10_000)) {
		t.Errorf("ledger after approval: %+v", led)
	}
	if !led.Consistent() {
		t.Errorf("ledger inconsistent: %+v", led)
	}

	// The loan stored the flat model at application time; the schedule
	// honors it: 10k at 10% flat over 6 months.
	if len(createdEntries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(createdEntries))
	}
	if dto.TotalPayable.StringFixed(2) != "11000.00" {
		t.Errorf("total=%s", dto.TotalPayable)
	}
	if createdEntries[0].ScheduledAmount.StringFixed(2) != "1833.33" {
		t.Errorf("first installment=%s", createdEntries[0].ScheduledAmount)
	}
	if createdEntries[5].ScheduledAmount.StringFixed(2) != "1833.35" {
		t.Errorf("last installment=%s", createdEntries[5].ScheduledAmount)
	}
	sumPrincipal := decimal.Zero
	for _, e := range createdEntries {
		if e.LoanID != l.ID || e.PayerID != l.BorrowerID {
			t.Fatalf("entry not bound to loan: %+v", e)
		}
		sumPrincipal = sumPrincipal.Add(e.ScheduledPrincipal)
	}
	if !sumPrincipal.Equal(l.Principal) {
		t.Errorf("schedule principal drifts: %s", sumPrincipal)
	}
}

func TestApprove_InsufficientFunds(t *testing.T) {
	l := makePendingLoan()
	led := &fund.Ledger{
		TotalFunds:     decimal.NewFromInt(9_999),
		AvailableFunds: decimal.NewFromInt(9_999),
	}
	repos, _, sched, funds := approvalRepos(l, led)
	sched.BulkCreateFn = func(ctx context.Context, entries []*paymentDomain.ScheduleEntry) error {
		t.Fatalf("schedule must not be created when funds are short")
		return nil
	}
	funds.SaveFn = func(ctx context.Context, got *fund.Ledger) error {
		t.Fatalf("ledger must not be saved when funds are short")
		return nil
	}

	uc := NewUsecase(&loanmock.Repo{}, uowmock.Passthrough(repos), testOptions())

	_, err := uc.Approve(context.Background(), l.LoanNumber, identity.Actor{ID: "a", Role: identity.RoleManager})
	if !errors.Is(err, fund.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if l.Status != domain.StatusPending {
		t.Fatalf("loan status changed on failed approval: %s", l.Status)
	}
}

func TestApprove_StatusGuards(t *testing.T) {
	cases := []struct {
		status domain.Status
		want   error
	}{
		{domain.StatusActive, domain.ErrAlreadyApproved},
		{domain.StatusApproved, domain.ErrAlreadyApproved},
		{domain.StatusRejected, domain.ErrInvalidTransition},
		{domain.StatusCompleted, domain.ErrInvalidTransition},
	}
	for _, tc := range cases {
		l := makePendingLoan()
		l.Status = tc.status
		repos, _, _, _ := approvalRepos(l, &fund.Ledger{})
		uc := NewUsecase(&loanmock.Repo{}, uowmock.Passthrough(repos), testOptions())

		_, err := uc.Approve(context.Background(), l.LoanNumber, identity.Actor{ID: "a", Role: identity.RoleManager})
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: want %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestApprove_NotFound(t *testing.T) {
	repos, _, _, _ := approvalRepos(nil, &fund.Ledger{})
	uc := NewUsecase(&loanmock.Repo{}, uowmock.Passthrough(repos), testOptions())

	_, err := uc.Approve(context.Background(), "LN2601159999", identity.Actor{ID: "a", Role: identity.RoleManager})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestReject(t *testing.T) {
	l := makePendingLoan()
	repos, _, _, _ := approvalRepos(l, nil)
	uc := NewUsecase(&loanmock.Repo{}, uowmock.Passthrough(repos), testOptions())
	reviewer := identity.Actor{ID: "r", Role: identity.RoleManager}

	if _, err := uc.Reject(context.Background(), l.LoanNumber, "too bad", reviewer); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short reason: want ErrValidation, got %v", err)
	}

	dto, err := uc.Reject(context.Background(), l.LoanNumber, "  insufficient collateral for the requested amount  ", reviewer)
	if err != nil {
		t.Fatalf("Reject err: %v", err)
	}
	if dto.Status != string(domain.StatusRejected) {
		t.Errorf("status=%s", dto.Status)
	}
	if dto.RejectionReason != "insufficient collateral for the requested amount" {
		t.Errorf("reason not trimmed: %q", dto.RejectionReason)
	}
	if dto.RejectedAt == nil {
		t.Errorf("RejectedAt not stamped")
	}

	// Second decision hits the status guard.
	if _, err := uc.Reject(context.Background(), l.LoanNumber, "the application was already decided", reviewer); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("double reject: want ErrInvalidTransition, got %v", err)
	}
}

func TestSetUnderReviewAndCancel(t *testing.T) {
	l := makePendingLoan()
	repos, _, _, _ := approvalRepos(l, nil)
	uc := NewUsecase(&loanmock.Repo{}, uowmock.Passthrough(repos), testOptions())
	actor := identity.Actor{ID: "m", Role: identity.RoleManager}

	dto, err := uc.SetUnderReview(context.Background(), l.LoanNumber, actor)
	if err != nil {
		t.Fatalf("SetUnderReview err: %v", err)
	}
	if dto.Status != string(domain.StatusUnderReview) {
		t.Errorf("status=%s", dto.Status)
	}
	if _, err := uc.SetUnderReview(context.Background(), l.LoanNumber, actor); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("re-review: want ErrInvalidTransition, got %v", err)
	}

	dto, err = uc.Cancel(context.Background(), l.LoanNumber, actor)
	if err != nil {
		t.Fatalf("Cancel err: %v", err)
	}
	if dto.Status != string(domain.StatusCancelled) {
		t.Errorf("status=%s", dto.Status)
	}
	if _, err := uc.Cancel(context.Background(), l.LoanNumber, actor); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("double cancel: want ErrInvalidTransition, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	l := makePendingLoan()
	repos, loans, sched, _ := approvalRepos(l, nil)

	scheduleDeleted := false
	sched.DeleteByLoanIDFn = func(ctx context.Context, loanID uint64) error {
		if loanID != l.ID {
			t.Fatalf("wrong loan id: %d", loanID)
		}
		scheduleDeleted = true
		return nil
	}
	var deletedBy string
	loans.DeleteFn = func(ctx context.Context, got *domain.Loan, by string) error {
		deletedBy = by
		return nil
	}

	uc := NewUsecase(&loanmock.Repo{}, uowmock.Passthrough(repos), testOptions())
	admin := identity.Actor{ID: "admin-1", Role: identity.RoleSuperadmin}

	if err := uc.Delete(context.Background(), l.LoanNumber, admin); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if !scheduleDeleted || deletedBy != "admin-1" {
		t.Fatalf("delete not cascaded: sched=%v by=%q", scheduleDeleted, deletedBy)
	}

	// Disbursed loans are never deletable.
	l.Status = domain.StatusActive
	if err := uc.Delete(context.Background(), l.LoanNumber, admin); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("active delete: want ErrInvalidTransition, got %v", err)
	}
}

func TestSweepOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	l := &domain.Loan{ID: 3, LoanNumber: "LN2601150001", Status: domain.StatusActive}
	entries := []*paymentDomain.ScheduleEntry{
		{
			ID: 31, LoanID: 3, PaymentNumber: 1,
			ScheduledDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			ScheduledAmount: decimal.RequireFromString("1833.33"),
			Status:          paymentDomain.StatusOverdue, // marked by an earlier sweep
		},
		{
			ID: 32, LoanID: 3, PaymentNumber: 2,
			ScheduledDate:   time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
			ScheduledAmount: decimal.RequireFromString("1833.33"),
			Status:          paymentDomain.StatusPending,
		},
	}

	overdueCount := int64(0)
	sched := &schedulemock.Repo{
		ListUnpaidDueBeforeFn: func(ctx context.Context, cutoff time.Time) ([]*paymentDomain.ScheduleEntry, error) {
			want := now.AddDate(0, 0, -5)
			if !cutoff.Equal(want) {
				t.Fatalf("cutoff=%v want %v", cutoff, want)
			}
			return entries, nil
		},
		SaveFn: func(ctx context.Context, e *paymentDomain.ScheduleEntry) error { return nil },
		CountOverdueFn: func(ctx context.Context, loanID uint64) (int64, error) {
			return overdueCount, nil
		},
	}
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*domain.Loan, error) { return l, nil },
	}
	repos := uow.Repos{Loans: loans, Schedule: sched}

	uc := NewUsecase(&loanmock.Repo{}, uowmock.Passthrough(repos), testOptions())
	uc.now = func() time.Time { return now }

	overdueCount = 2 // below the default threshold of 3
	res, err := uc.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("SweepOverdue err: %v", err)
	}
	if res.EntriesMarkedOverdue != 1 {
		t.Errorf("entries marked=%d", res.EntriesMarkedOverdue)
	}
	if res.LoansMarkedOverdue != 1 || res.LoansDefaulted != 0 {
		t.Errorf("unexpected result: %+v", res)
	}
	if l.Status != domain.StatusOverdue {
		t.Errorf("loan status=%s", l.Status)
	}
	if entries[1].Status != paymentDomain.StatusOverdue {
		t.Errorf("entry 2 not marked overdue: %s", entries[1].Status)
	}
	// Jan 15 due, 5-day grace: 40 days past grace at 0.05%/day on 1833.33.
	if entries[0].LateFee.StringFixed(2) != "36.67" {
		t.Errorf("late fee=%s", entries[0].LateFee)
	}

	// A third overdue installment crosses the threshold.
	overdueCount = 3
	res, err = uc.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("second sweep err: %v", err)
	}
	if res.LoansDefaulted != 1 {
		t.Errorf("defaulted=%d", res.LoansDefaulted)
	}
	if l.Status != domain.StatusDefaulted {
		t.Errorf("loan status=%s", l.Status)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &loanmock.Repo{
		GetByLoanNumberFn: func(ctx context.Context, loanNumber string) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(repo, uowmock.New(), testOptions())

	if _, err := uc.Get(context.Background(), "LN2601019999"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
