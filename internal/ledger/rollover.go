package ledger

import (
	"github.com/opius2017/Finmfb-sub006/internal/models"
	"github.com/shopspring/decimal"
)

// RolloverPolicy decides the starting maximum of the month following a closed
// one. Implementations must be pure: ProcessMonthlyRollover may call them
// again when replayed.
type RolloverPolicy interface {
	// NextMaximum returns the maximum amount the next month starts with.
	NextMaximum(closed models.MonthlyThreshold) decimal.Decimal
}

// ResetPolicy starts every month from a fixed baseline. Unused capacity of
// the closed month is forfeited. This is the default policy.
type ResetPolicy struct {
	Baseline decimal.Decimal
}

func (p ResetPolicy) NextMaximum(models.MonthlyThreshold) decimal.Decimal {
	return p.Baseline
}

// CarryOverPolicy adds the closed month's unused capacity to the baseline, so
// a quiet month enlarges the next one.
type CarryOverPolicy struct {
	Baseline decimal.Decimal
}

func (p CarryOverPolicy) NextMaximum(closed models.MonthlyThreshold) decimal.Decimal {
	return p.Baseline.Add(closed.Remaining())
}

// RolloverResult reports what a rollover did.
type RolloverResult struct {
	ClosedMonth         string          `json:"closedMonth" example:"2025-01"`    // The month that was closed
	Leftover            decimal.Decimal `json:"leftover" example:"1000000"`       // Capacity left unused in the closed month
	NextMaximum         decimal.Decimal `json:"nextMaximum" example:"3000000"`    // The maximum the following month starts with
	ExpiredApplications int             `json:"expiredApplications" example:"2"`  // Pending applications expired by the close
	AlreadyProcessed    bool            `json:"alreadyProcessed" example:"false"` // True when the month had been rolled over before
}
