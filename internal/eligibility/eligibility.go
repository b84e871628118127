// Package eligibility decides whether an applicant may receive a requested
// loan amount given income based debt service limits.
package eligibility

import (
	"errors"

	"github.com/opius2017/Finmfb-sub006/internal/amortization"
	"github.com/shopspring/decimal"
)

var (
	ErrIncomeNotPositive = errors.New("the monthly income must be larger than zero")
	ErrAmountNotPositive = errors.New("the requested amount must be larger than zero")
	ErrTenorNotPositive  = errors.New("the requested tenor must be at least one month")
	ErrDebtNegative      = errors.New("the existing outstanding debt must not be negative")
)

// Candidate is a disbursement request under evaluation.
type Candidate struct {
	RequestedAmount decimal.Decimal `json:"requestedAmount" example:"2000000"` // Amount the applicant asks for
	TenorMonths     int             `json:"tenorMonths" example:"24"`          // Requested repayment duration in months
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome" example:"150000"`    // Verified monthly income
	ExistingDebt    decimal.Decimal `json:"existingDebt" example:"0"`          // Outstanding balance of other obligations
}

// Limits are the product bounds a candidate is evaluated against.
type Limits struct {
	MinAmount          decimal.Decimal `json:"minAmount" example:"100000"`      // Smallest amount the product allows
	MaxAmount          decimal.Decimal `json:"maxAmount" example:"5000000"`     // Largest amount the product allows
	MinTenorMonths     int             `json:"minTenorMonths" example:"6"`      // Shortest tenor the product allows
	MaxTenorMonths     int             `json:"maxTenorMonths" example:"36"`     // Longest tenor the product allows
	AnnualInterestRate decimal.Decimal `json:"annualInterestRate" example:"20"` // Annual rate in percent
}

// Result is the outcome of an evaluation. An ineligible result is a valid
// response, not an error.
type Result struct {
	Eligible               bool            `json:"eligible" example:"false"`                // Did all checks pass?
	MaximumEligibleAmount  decimal.Decimal `json:"maximumEligibleAmount" example:"1048747"` // Largest amount this applicant could borrow at the requested tenor
	RecommendedTenorMonths int             `json:"recommendedTenorMonths" example:"24"`     // Requested tenor clamped into the product range
	Reasons                []Reason        `json:"reasons"`                                 // Causes of ineligibility, empty when eligible
}

// ExistingDebtServiceFunc approximates the monthly debt service of an
// applicant's other obligations from their total outstanding balance.
type ExistingDebtServiceFunc func(outstanding decimal.Decimal) decimal.Decimal

// Policy holds the risk constants an Evaluator applies.
type Policy struct {
	// MaxDebtServiceRatio is the largest fraction of monthly income that may
	// go to debt service.
	MaxDebtServiceRatio decimal.Decimal

	// ExistingDebtFactor approximates the monthly service of existing debt as
	// a fixed fraction of the outstanding balance. Only used when
	// ExistingDebtService is nil.
	ExistingDebtFactor decimal.Decimal

	// ExistingDebtService replaces the fixed-fraction approximation with an
	// exact computation when set.
	ExistingDebtService ExistingDebtServiceFunc
}

// DefaultPolicy returns the standard risk policy: at most half the monthly
// income may service debt, and existing obligations are approximated at 10%
// of their outstanding balance per month.
func DefaultPolicy() Policy {
	return Policy{
		MaxDebtServiceRatio: decimal.NewFromFloat(0.5),
		ExistingDebtFactor:  decimal.NewFromFloat(0.1),
	}
}

// Evaluator applies a risk policy to disbursement candidates. It is stateless
// and safe for concurrent use.
type Evaluator struct {
	policy Policy
}

// NewEvaluator returns an Evaluator for the policy.
func NewEvaluator(policy Policy) *Evaluator {
	return &Evaluator{policy: policy}
}

func (e *Evaluator) existingDebtService(outstanding decimal.Decimal) decimal.Decimal {
	if e.policy.ExistingDebtService != nil {
		return e.policy.ExistingDebtService(outstanding)
	}

	return outstanding.Mul(e.policy.ExistingDebtFactor)
}

// Evaluate checks a candidate against the product limits and the risk policy.
//
// Range checks accumulate reasons without short-circuiting so that the
// applicant sees every violated bound at once. Inputs that make the ratio
// meaningless fail with an error instead of producing a silently wrong
// result.
func (e *Evaluator) Evaluate(candidate Candidate, limits Limits) (Result, error) {
	if !candidate.MonthlyIncome.IsPositive() {
		return Result{}, ErrIncomeNotPositive
	}

	if !candidate.RequestedAmount.IsPositive() {
		return Result{}, ErrAmountNotPositive
	}

	if candidate.TenorMonths <= 0 {
		return Result{}, ErrTenorNotPositive
	}

	if candidate.ExistingDebt.IsNegative() {
		return Result{}, ErrDebtNegative
	}

	result := Result{
		RecommendedTenorMonths: clampTenor(candidate.TenorMonths, limits),
	}

	if candidate.RequestedAmount.LessThan(limits.MinAmount) {
		result.Reasons = append(result.Reasons, Reason{
			Kind:   ReasonAmountBelowMinimum,
			Limit:  limits.MinAmount,
			Actual: candidate.RequestedAmount,
		})
	}

	if candidate.RequestedAmount.GreaterThan(limits.MaxAmount) {
		result.Reasons = append(result.Reasons, Reason{
			Kind:   ReasonAmountAboveMaximum,
			Limit:  limits.MaxAmount,
			Actual: candidate.RequestedAmount,
		})
	}

	if candidate.TenorMonths < limits.MinTenorMonths {
		result.Reasons = append(result.Reasons, Reason{
			Kind:   ReasonTenorBelowMinimum,
			Limit:  decimal.NewFromInt(int64(limits.MinTenorMonths)),
			Actual: decimal.NewFromInt(int64(candidate.TenorMonths)),
		})
	}

	if candidate.TenorMonths > limits.MaxTenorMonths {
		result.Reasons = append(result.Reasons, Reason{
			Kind:   ReasonTenorAboveMaximum,
			Limit:  decimal.NewFromInt(int64(limits.MaxTenorMonths)),
			Actual: decimal.NewFromInt(int64(candidate.TenorMonths)),
		})
	}

	candidatePayment, err := amortization.MonthlyPayment(candidate.RequestedAmount, limits.AnnualInterestRate, candidate.TenorMonths)
	if err != nil {
		return Result{}, err
	}

	existingService := e.existingDebtService(candidate.ExistingDebt)
	ratio := existingService.Add(candidatePayment).Div(candidate.MonthlyIncome)

	ratioExceeded := ratio.GreaterThan(e.policy.MaxDebtServiceRatio)
	if ratioExceeded {
		result.Reasons = append(result.Reasons, Reason{
			Kind:   ReasonDebtServiceRatioExceeded,
			Limit:  e.policy.MaxDebtServiceRatio,
			Actual: ratio.Round(4),
		})
	}

	result.Eligible = len(result.Reasons) == 0

	if !ratioExceeded {
		maximum, err := e.maximumAmount(candidate, limits, existingService)
		if err != nil {
			return Result{}, err
		}
		result.MaximumEligibleAmount = maximum
	}

	return result, nil
}

// maximumAmount returns the lesser of the product maximum and the principal
// whose amortized payment exactly saturates the debt service ratio at the
// requested tenor and rate. The inversion is closed form, not iterative.
func (e *Evaluator) maximumAmount(candidate Candidate, limits Limits, existingService decimal.Decimal) (decimal.Decimal, error) {
	headroom := candidate.MonthlyIncome.Mul(e.policy.MaxDebtServiceRatio).Sub(existingService)
	if !headroom.IsPositive() {
		return decimal.Zero, nil
	}

	saturating, err := amortization.PrincipalForPayment(headroom, limits.AnnualInterestRate, candidate.TenorMonths)
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.Min(limits.MaxAmount, saturating), nil
}

func clampTenor(tenor int, limits Limits) int {
	if tenor < limits.MinTenorMonths {
		return limits.MinTenorMonths
	}

	if tenor > limits.MaxTenorMonths {
		return limits.MaxTenorMonths
	}

	return tenor
}
