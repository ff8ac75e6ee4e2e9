package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fundpool/internal/domain/payment"
)

func makeSchedule(loanID uint64, n int, start time.Time) []*payment.ScheduleEntry {
	entries := make([]*payment.ScheduleEntry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, &payment.ScheduleEntry{
			LoanID:             loanID,
			PaymentNumber:      i,
			ScheduledDate:      start.AddDate(0, i, 0),
			ScheduledAmount:    decimal.RequireFromString("1833.33"),
			ScheduledPrincipal: decimal.RequireFromString("1666.67"),
			ScheduledInterest:  decimal.RequireFromString("166.66"),
			Status:             payment.StatusPending,
		})
	}
	return entries
}

func TestBulkCreateAndListByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if err := repo.BulkCreate(ctx, makeSchedule(7, 6, start)); err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}

	got, err := repo.ListByLoanID(ctx, 7)
	if err != nil {
		t.Fatalf("ListByLoanID: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(got))
	}
	for i, e := range got {
		if e.PaymentNumber != i+1 {
			t.Fatalf("entries out of order: %+v", got)
		}
	}
}

func TestNextDueForUpdate_OrderAndExhaustion(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	entries := makeSchedule(3, 3, start)
	entries[0].Status = payment.StatusPaid
	entries[1].Status = payment.StatusOverdue
	if err := repo.BulkCreate(ctx, entries); err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}

	// The overdue second entry comes before the pending third.
	next, err := repo.NextDueForUpdate(ctx, 3)
	if err != nil {
		t.Fatalf("NextDueForUpdate: %v", err)
	}
	if next.PaymentNumber != 2 {
		t.Fatalf("expected entry 2, got %d", next.PaymentNumber)
	}

	next.Status = payment.StatusPaid
	if err := repo.Save(ctx, next); err != nil {
		t.Fatal(err)
	}
	next, err = repo.NextDueForUpdate(ctx, 3)
	if err != nil {
		t.Fatalf("NextDueForUpdate after pay: %v", err)
	}
	if next.PaymentNumber != 3 {
		t.Fatalf("expected entry 3, got %d", next.PaymentNumber)
	}

	next.Status = payment.StatusPaid
	if err := repo.Save(ctx, next); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.NextDueForUpdate(ctx, 3); !errors.Is(err, payment.ErrNoDueInstallment) {
		t.Fatalf("expected ErrNoDueInstallment, got %v", err)
	}
}

func TestCounts(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	entries := makeSchedule(9, 4, start)
	entries[0].Status = payment.StatusPaid
	entries[1].Status = payment.StatusOverdue
	entries[2].Status = payment.StatusOverdue
	if err := repo.BulkCreate(ctx, entries); err != nil {
		t.Fatal(err)
	}

	unpaid, err := repo.CountUnpaid(ctx, 9)
	if err != nil {
		t.Fatalf("CountUnpaid: %v", err)
	}
	if unpaid != 3 {
		t.Errorf("unpaid: got %d want 3", unpaid)
	}

	overdue, err := repo.CountOverdue(ctx, 9)
	if err != nil {
		t.Fatalf("CountOverdue: %v", err)
	}
	if overdue != 2 {
		t.Errorf("overdue: got %d want 2", overdue)
	}
}

func TestListUnpaidDueBefore(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	entries := makeSchedule(11, 3, start) // due Feb 15, Mar 15, Apr 15
	entries[0].Status = payment.StatusPaid
	if err := repo.BulkCreate(ctx, entries); err != nil {
		t.Fatal(err)
	}

	cutoff := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	due, err := repo.ListUnpaidDueBefore(ctx, cutoff)
	if err != nil {
		t.Fatalf("ListUnpaidDueBefore: %v", err)
	}
	// Entry 1 is paid, entry 3 is due after the cutoff.
	if len(due) != 1 || due[0].PaymentNumber != 2 {
		t.Fatalf("unexpected due entries: %+v", due)
	}
}

func TestDeleteByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if err := repo.BulkCreate(ctx, makeSchedule(21, 2, start)); err != nil {
		t.Fatal(err)
	}
	if err := repo.BulkCreate(ctx, makeSchedule(22, 2, start)); err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteByLoanID(ctx, 21); err != nil {
		t.Fatalf("DeleteByLoanID: %v", err)
	}

	gone, err := repo.ListByLoanID(ctx, 21)
	if err != nil {
		t.Fatal(err)
	}
	if len(gone) != 0 {
		t.Fatalf("expected no entries for loan 21, got %d", len(gone))
	}
	kept, err := repo.ListByLoanID(ctx, 22)
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 2 {
		t.Fatalf("loan 22 entries affected, got %d", len(kept))
	}
}
