package eligibility

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ReasonKind enumerates the causes an applicant can fail a check on.
type ReasonKind string

const (
	ReasonAmountBelowMinimum       ReasonKind = "AMOUNT_BELOW_MINIMUM"
	ReasonAmountAboveMaximum       ReasonKind = "AMOUNT_ABOVE_MAXIMUM"
	ReasonTenorBelowMinimum        ReasonKind = "TENOR_BELOW_MINIMUM"
	ReasonTenorAboveMaximum        ReasonKind = "TENOR_ABOVE_MAXIMUM"
	ReasonDebtServiceRatioExceeded ReasonKind = "DEBT_SERVICE_RATIO_EXCEEDED"
)

// Reason is one structured cause of ineligibility. Limit and Actual carry the
// violated bound and the applicant's value so that callers can render or
// branch on them without parsing text.
type Reason struct {
	Kind   ReasonKind      `json:"kind" example:"DEBT_SERVICE_RATIO_EXCEEDED"` // What check failed
	Limit  decimal.Decimal `json:"limit" example:"0.5"`                        // The bound that was violated
	Actual decimal.Decimal `json:"actual" example:"0.62"`                      // The applicant's value
}

func (r Reason) String() string {
	switch r.Kind {
	case ReasonAmountBelowMinimum:
		return fmt.Sprintf("the requested amount %s is below the product minimum of %s", r.Actual, r.Limit)
	case ReasonAmountAboveMaximum:
		return fmt.Sprintf("the requested amount %s is above the product maximum of %s", r.Actual, r.Limit)
	case ReasonTenorBelowMinimum:
		return fmt.Sprintf("the requested tenor of %s months is below the product minimum of %s", r.Actual, r.Limit)
	case ReasonTenorAboveMaximum:
		return fmt.Sprintf("the requested tenor of %s months is above the product maximum of %s", r.Actual, r.Limit)
	case ReasonDebtServiceRatioExceeded:
		percent := r.Actual.Mul(decimal.NewFromInt(100)).Round(2)
		limitPercent := r.Limit.Mul(decimal.NewFromInt(100)).Round(2)
		return fmt.Sprintf("the debt service ratio of %s%% exceeds the allowed %s%%", percent, limitPercent)
	}

	return string(r.Kind)
}
