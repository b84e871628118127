// Package amortization computes equal-installment repayment schedules.
//
// All functions are pure: the same inputs always produce the same schedule,
// and they are safe for concurrent use.
package amortization

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrPrincipalNotPositive = errors.New("the principal must be larger than zero")
	ErrTenorNotPositive     = errors.New("the tenor must be at least one month")
	ErrRateNegative         = errors.New("the annual interest rate must not be negative")
	ErrPaymentNotPositive   = errors.New("the monthly payment must be larger than zero")
)

// Installment is one period of a repayment schedule.
type Installment struct {
	Number           int             `json:"number" example:"1"`                     // Position in the schedule, starting at 1
	DueDate          time.Time       `json:"dueDate" example:"2025-02-01T00:00:00Z"` // Date the installment is due
	Principal        decimal.Decimal `json:"principal" example:"92015.99"`           // Principal component of the payment
	Interest         decimal.Decimal `json:"interest" example:"18000"`               // Interest component of the payment
	TotalPayment     decimal.Decimal `json:"totalPayment" example:"110015.99"`       // Principal plus interest
	RemainingBalance decimal.Decimal `json:"remainingBalance" example:"1107984.01"`  // Outstanding principal after this payment
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// monthlyRate converts an annual percentage rate to a monthly fraction.
func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(twelve)
}

func validate(principal, annualRatePercent decimal.Decimal, tenorMonths int) error {
	if !principal.IsPositive() {
		return ErrPrincipalNotPositive
	}

	if tenorMonths <= 0 {
		return ErrTenorNotPositive
	}

	if annualRatePercent.IsNegative() {
		return ErrRateNegative
	}

	return nil
}

// MonthlyPayment returns the fixed monthly annuity payment for a loan.
//
// For a zero interest rate the payment is the principal divided evenly over
// the tenor, avoiding the division by zero in the annuity formula.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, tenorMonths int) (decimal.Decimal, error) {
	if err := validate(principal, annualRatePercent, tenorMonths); err != nil {
		return decimal.Zero, err
	}

	tenor := decimal.NewFromInt(int64(tenorMonths))

	rate := monthlyRate(annualRatePercent)
	if rate.IsZero() {
		return principal.Div(tenor).Round(2), nil
	}

	// payment = P * i * (1+i)^n / ((1+i)^n - 1)
	compound := one.Add(rate).Pow(tenor)
	payment := principal.Mul(rate).Mul(compound).Div(compound.Sub(one))

	return payment.Round(2), nil
}

// PrincipalForPayment inverts the annuity formula: it returns the largest
// principal whose fixed monthly payment does not exceed the given payment at
// the given rate and tenor.
func PrincipalForPayment(payment, annualRatePercent decimal.Decimal, tenorMonths int) (decimal.Decimal, error) {
	if !payment.IsPositive() {
		return decimal.Zero, ErrPaymentNotPositive
	}

	if tenorMonths <= 0 {
		return decimal.Zero, ErrTenorNotPositive
	}

	if annualRatePercent.IsNegative() {
		return decimal.Zero, ErrRateNegative
	}

	tenor := decimal.NewFromInt(int64(tenorMonths))

	rate := monthlyRate(annualRatePercent)
	if rate.IsZero() {
		return payment.Mul(tenor).Round(2), nil
	}

	// principal = payment * ((1+i)^n - 1) / (i * (1+i)^n)
	compound := one.Add(rate).Pow(tenor)
	principal := payment.Mul(compound.Sub(one)).Div(rate.Mul(compound))

	return principal.Round(2), nil
}

// Generate computes the full repayment schedule for a loan.
//
// The schedule is computed eagerly and satisfies two invariants: the principal
// components sum to exactly the original principal, and the balance after the
// last installment is zero. Rounding drift accumulated over the schedule is
// absorbed by the last installment, whose total payment may therefore differ
// from the fixed annuity payment by a few minor units.
func Generate(principal, annualRatePercent decimal.Decimal, tenorMonths int, firstDue time.Time) ([]Installment, error) {
	payment, err := MonthlyPayment(principal, annualRatePercent, tenorMonths)
	if err != nil {
		return nil, err
	}

	rate := monthlyRate(annualRatePercent)
	balance := principal

	installments := make([]Installment, 0, tenorMonths)
	for number := 1; number <= tenorMonths; number++ {
		interest := balance.Mul(rate).Round(2)
		principalPortion := payment.Sub(interest)
		total := payment

		// The last installment clears the remaining balance exactly.
		if number == tenorMonths {
			principalPortion = balance
			total = principalPortion.Add(interest)
		}

		balance = balance.Sub(principalPortion)

		installments = append(installments, Installment{
			Number:           number,
			DueDate:          firstDue.AddDate(0, number-1, 0),
			Principal:        principalPortion,
			Interest:         interest,
			TotalPayment:     total,
			RemainingBalance: balance,
		})
	}

	return installments, nil
}
