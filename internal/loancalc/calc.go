// Package loancalc turns loan terms into a repayment schedule. Everything
// here is pure: no clock reads, no I/O, safe to call concurrently.
package loancalc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Model selects the interest calculation strategy.
type Model string

const (
	// ModelAmortizing uses the standard annuity (PMT) formula: interest is
	// charged on the declining balance each month.
	ModelAmortizing Model = "amortizing"
	// ModelFlat charges interest once on the full principal for the whole
	// term and divides it evenly across installments.
	ModelFlat Model = "flat"
)

func ParseModel(s string) (Model, error) {
	switch Model(s) {
	case ModelAmortizing, ModelFlat:
		return Model(s), nil
	}
	return "", fmt.Errorf("unknown interest model %q", s)
}

// Installment is one monthly obligation within a schedule.
type Installment struct {
	Number    int             `json:"number"`
	DueDate   time.Time       `json:"due_date"`
	Amount    decimal.Decimal `json:"amount"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
}

// Calculation is the full result of pricing a loan.
type Calculation struct {
	MonthlyPayment decimal.Decimal
	TotalAmount    decimal.Decimal
	TotalInterest  decimal.Decimal
	Schedule       []Installment
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Compute prices a loan and produces its installment schedule. Inputs are
// assumed validated by the caller: principal > 0, termMonths > 0,
// ratePercent >= 0 (12.5 means 12.5% annual).
//
// All money values are rounded half-up to 2 decimal places. The final
// installment absorbs rounding drift so the schedule reconciles exactly:
// sum(Principal) == principal and sum(Amount) == TotalAmount.
func Compute(model Model, principal, ratePercent decimal.Decimal, termMonths int, start time.Time) (*Calculation, error) {
	switch model {
	case ModelAmortizing:
		return amortizing(principal, ratePercent, termMonths, start), nil
	case ModelFlat:
		return flat(principal, ratePercent, termMonths, start), nil
	}
	return nil, fmt.Errorf("unknown interest model %q", model)
}

func amortizing(principal, ratePercent decimal.Decimal, termMonths int, start time.Time) *Calculation {
	n := decimal.NewFromInt(int64(termMonths))
	r := ratePercent.Div(hundred).Div(twelve)

	var monthly decimal.Decimal
	if r.IsZero() {
		monthly = principal.DivRound(n, 2)
	} else {
		// PMT = P * r * (1+r)^n / ((1+r)^n - 1)
		factor := one.Add(r).Pow(n)
		monthly = principal.Mul(r).Mul(factor).DivRound(factor.Sub(one), 2)
	}

	schedule := make([]Installment, 0, termMonths)
	balance := principal
	sumPrincipal := decimal.Zero
	sumAmount := decimal.Zero

	for i := 1; i <= termMonths; i++ {
		inst := Installment{Number: i, DueDate: start.AddDate(0, i, 0)}
		if i < termMonths {
			inst.Interest = balance.Mul(r).Round(2)
			inst.Principal = monthly.Sub(inst.Interest)
			if inst.Principal.GreaterThan(balance) {
				inst.Principal = balance
			}
			inst.Amount = inst.Principal.Add(inst.Interest)
			balance = balance.Sub(inst.Principal)
		} else {
			// Last installment: principal absorbs rounding drift so the
			// cumulative principal equals the original loan to the cent.
			inst.Principal = principal.Sub(sumPrincipal)
			inst.Interest = monthly.Sub(inst.Principal)
			if inst.Interest.IsNegative() {
				inst.Interest = decimal.Zero
			}
			inst.Amount = inst.Principal.Add(inst.Interest)
			balance = decimal.Zero
		}
		sumPrincipal = sumPrincipal.Add(inst.Principal)
		sumAmount = sumAmount.Add(inst.Amount)
		schedule = append(schedule, inst)
	}

	return &Calculation{
		MonthlyPayment: monthly,
		TotalAmount:    sumAmount,
		TotalInterest:  sumAmount.Sub(principal),
		Schedule:       schedule,
	}
}

func flat(principal, ratePercent decimal.Decimal, termMonths int, start time.Time) *Calculation {
	n := decimal.NewFromInt(int64(termMonths))

	totalInterest := principal.Mul(ratePercent).DivRound(hundred, 2)
	totalAmount := principal.Add(totalInterest)
	monthly := totalAmount.DivRound(n, 2)
	prinShare := principal.DivRound(n, 2)

	schedule := make([]Installment, 0, termMonths)
	sumPrincipal := decimal.Zero
	sumAmount := decimal.Zero

	for i := 1; i <= termMonths; i++ {
		inst := Installment{Number: i, DueDate: start.AddDate(0, i, 0)}
		if i < termMonths {
			inst.Amount = monthly
			inst.Principal = prinShare
			inst.Interest = monthly.Sub(prinShare)
		} else {
			inst.Amount = totalAmount.Sub(sumAmount)
			inst.Principal = principal.Sub(sumPrincipal)
			inst.Interest = inst.Amount.Sub(inst.Principal)
		}
		sumPrincipal = sumPrincipal.Add(inst.Principal)
		sumAmount = sumAmount.Add(inst.Amount)
		schedule = append(schedule, inst)
	}

	return &Calculation{
		MonthlyPayment: monthly,
		TotalAmount:    totalAmount,
		TotalInterest:  totalInterest,
		Schedule:       schedule,
	}
}
