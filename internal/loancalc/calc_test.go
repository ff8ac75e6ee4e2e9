package loancalc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var testStart = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

func TestParseModel(t *testing.T) {
	if m, err := ParseModel("amortizing"); err != nil || m != ModelAmortizing {
		t.Fatalf("ParseModel(amortizing) = %v, %v", m, err)
	}
	if m, err := ParseModel("flat"); err != nil || m != ModelFlat {
		t.Fatalf("ParseModel(flat) = %v, %v", m, err)
	}
	if _, err := ParseModel("compound-daily"); err == nil {
		t.Fatal("ParseModel accepted an unknown model")
	}
}

func TestCompute_UnknownModel(t *testing.T) {
	if _, err := Compute(Model("simple"), d("1000"), d("10"), 6, testStart); err == nil {
		t.Fatal("want error for unknown model")
	}
}

func TestAmortizing_PMTExample(t *testing.T) {
	// 50,000 at 12% annual over 12 months.
	calc, err := Compute(ModelAmortizing, d("50000"), d("12"), 12, testStart)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if !calc.MonthlyPayment.Equal(d("4442.44")) {
		t.Fatalf("monthly = %s, want 4442.44", calc.MonthlyPayment)
	}
	if !calc.TotalAmount.Equal(d("53309.28")) {
		t.Fatalf("total = %s, want 53309.28", calc.TotalAmount)
	}
	if !calc.TotalInterest.Equal(d("3309.28")) {
		t.Fatalf("interest = %s, want 3309.28", calc.TotalInterest)
	}
	if len(calc.Schedule) != 12 {
		t.Fatalf("schedule has %d entries, want 12", len(calc.Schedule))
	}

	// Entries are 1-indexed, contiguous, one month apart starting 2024-02-20.
	for i, inst := range calc.Schedule {
		if inst.Number != i+1 {
			t.Fatalf("entry %d has number %d", i, inst.Number)
		}
		want := testStart.AddDate(0, i+1, 0)
		if !inst.DueDate.Equal(want) {
			t.Fatalf("entry %d due %s, want %s", inst.Number, inst.DueDate, want)
		}
		if !inst.Amount.IsPositive() {
			t.Fatalf("entry %d has non-positive amount %s", inst.Number, inst.Amount)
		}
	}
	if got := calc.Schedule[0].DueDate; !got.Equal(time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("first due date = %s", got)
	}

	// First split: interest = 50000 * 1% = 500.00.
	if !calc.Schedule[0].Interest.Equal(d("500.00")) {
		t.Fatalf("first interest = %s, want 500.00", calc.Schedule[0].Interest)
	}
	if !calc.Schedule[0].Principal.Equal(d("3942.44")) {
		t.Fatalf("first principal = %s, want 3942.44", calc.Schedule[0].Principal)
	}
}

func TestAmortizing_PrincipalReconcilesToTheCent(t *testing.T) {
	cases := []struct {
		principal string
		rate      string
		term      int
	}{
		{"50000", "12", 12},
		{"100000", "15", 36},
		{"99999.99", "8", 24},
		{"1000", "14", 7},
		{"333333.33", "10", 48},
	}
	for _, tc := range cases {
		calc, err := Compute(ModelAmortizing, d(tc.principal), d(tc.rate), tc.term, testStart)
		if err != nil {
			t.Fatalf("Compute(%s,%s,%d): %v", tc.principal, tc.rate, tc.term, err)
		}
		sumPrin, sumAmt := decimal.Zero, decimal.Zero
		for _, inst := range calc.Schedule {
			sumPrin = sumPrin.Add(inst.Principal)
			sumAmt = sumAmt.Add(inst.Amount)
		}
		if !sumPrin.Equal(d(tc.principal)) {
			t.Fatalf("case %s/%s/%d: principal sum %s != %s", tc.principal, tc.rate, tc.term, sumPrin, tc.principal)
		}
		if !sumAmt.Equal(calc.TotalAmount) {
			t.Fatalf("case %s/%s/%d: amount sum %s != total %s", tc.principal, tc.rate, tc.term, sumAmt, calc.TotalAmount)
		}
	}
}

func TestAmortizing_ZeroRate(t *testing.T) {
	calc, err := Compute(ModelAmortizing, d("1200"), d("0"), 12, testStart)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !calc.MonthlyPayment.Equal(d("100.00")) {
		t.Fatalf("monthly = %s, want 100.00", calc.MonthlyPayment)
	}
	if !calc.TotalInterest.IsZero() {
		t.Fatalf("interest = %s, want 0", calc.TotalInterest)
	}
	if !calc.TotalAmount.Equal(d("1200")) {
		t.Fatalf("total = %s, want 1200", calc.TotalAmount)
	}
	for _, inst := range calc.Schedule {
		if !inst.Interest.IsZero() {
			t.Fatalf("entry %d carries interest %s at zero rate", inst.Number, inst.Interest)
		}
	}
}

func TestFlat_Example(t *testing.T) {
	// 10,000 at 10% flat over 6 months: interest 1,000, total 11,000.
	calc, err := Compute(ModelFlat, d("10000"), d("10"), 6, testStart)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !calc.TotalInterest.Equal(d("1000")) {
		t.Fatalf("interest = %s, want 1000", calc.TotalInterest)
	}
	if !calc.TotalAmount.Equal(d("11000")) {
		t.Fatalf("total = %s, want 11000", calc.TotalAmount)
	}
	if !calc.MonthlyPayment.Equal(d("1833.33")) {
		t.Fatalf("monthly = %s, want 1833.33", calc.MonthlyPayment)
	}
	if len(calc.Schedule) != 6 {
		t.Fatalf("schedule has %d entries, want 6", len(calc.Schedule))
	}

	// First five installments are identical; the last absorbs the rounding
	// remainder so totals reconcile exactly.
	for _, inst := range calc.Schedule[:5] {
		if !inst.Amount.Equal(d("1833.33")) {
			t.Fatalf("entry %d amount = %s, want 1833.33", inst.Number, inst.Amount)
		}
		if !inst.Principal.Equal(d("1666.67")) {
			t.Fatalf("entry %d principal = %s, want 1666.67", inst.Number, inst.Principal)
		}
	}
	last := calc.Schedule[5]
	if !last.Amount.Equal(d("1833.35")) {
		t.Fatalf("last amount = %s, want 1833.35", last.Amount)
	}

	sumPrin, sumAmt, sumInt := decimal.Zero, decimal.Zero, decimal.Zero
	for _, inst := range calc.Schedule {
		sumPrin = sumPrin.Add(inst.Principal)
		sumAmt = sumAmt.Add(inst.Amount)
		sumInt = sumInt.Add(inst.Interest)
	}
	if !sumPrin.Equal(d("10000")) {
		t.Fatalf("principal sum = %s", sumPrin)
	}
	if !sumAmt.Equal(d("11000")) {
		t.Fatalf("amount sum = %s", sumAmt)
	}
	if !sumInt.Equal(d("1000")) {
		t.Fatalf("interest sum = %s", sumInt)
	}
}

func TestFlat_EvenDivisionKeepsAllInstallmentsIdentical(t *testing.T) {
	// 12,000 at 10% flat over 12: total 13,200, exactly 1,100 a month.
	calc, err := Compute(ModelFlat, d("12000"), d("10"), 12, testStart)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !calc.MonthlyPayment.Mul(decimal.NewFromInt(12)).Equal(calc.TotalAmount) {
		t.Fatalf("monthly*12 = %s, total = %s", calc.MonthlyPayment.Mul(decimal.NewFromInt(12)), calc.TotalAmount)
	}
	for _, inst := range calc.Schedule {
		if !inst.Amount.Equal(d("1100.00")) {
			t.Fatalf("entry %d amount = %s, want 1100.00", inst.Number, inst.Amount)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	for _, model := range []Model{ModelAmortizing, ModelFlat} {
		a, err := Compute(model, d("77777.77"), d("13.5"), 19, testStart)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		b, _ := Compute(model, d("77777.77"), d("13.5"), 19, testStart)
		if !a.MonthlyPayment.Equal(b.MonthlyPayment) || !a.TotalAmount.Equal(b.TotalAmount) {
			t.Fatalf("%s: totals differ across identical runs", model)
		}
		for i := range a.Schedule {
			x, y := a.Schedule[i], b.Schedule[i]
			if !x.Amount.Equal(y.Amount) || !x.Principal.Equal(y.Principal) || !x.Interest.Equal(y.Interest) || !x.DueDate.Equal(y.DueDate) {
				t.Fatalf("%s: entry %d differs across identical runs", model, i+1)
			}
		}
	}
}

func TestLateFee(t *testing.T) {
	// 0.05%/day on 1,000 for 10 days = 5.00.
	if got := LateFee(d("1000"), 10, d("0.05")); !got.Equal(d("5.00")) {
		t.Fatalf("fee = %s, want 5.00", got)
	}
	if got := LateFee(d("1000"), 0, d("0.05")); !got.IsZero() {
		t.Fatalf("fee for 0 days = %s, want 0", got)
	}
	if got := LateFee(d("0"), 10, d("0.05")); !got.IsZero() {
		t.Fatalf("fee on 0 overdue = %s, want 0", got)
	}
}

func TestDaysOverdue(t *testing.T) {
	scheduled := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	within := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	if got := DaysOverdue(scheduled, 5, within); got != 0 {
		t.Fatalf("within grace: got %d days", got)
	}
	if IsOverdue(scheduled, 5, within) {
		t.Fatal("IsOverdue inside grace period")
	}

	after := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) // 3.5 days past grace end
	if got := DaysOverdue(scheduled, 5, after); got != 4 {
		t.Fatalf("got %d days, want 4 (partial days round up)", got)
	}
	if !IsOverdue(scheduled, 5, after) {
		t.Fatal("IsOverdue false past grace period")
	}
}
