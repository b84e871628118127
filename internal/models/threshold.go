package models

import (
	"time"

	"github.com/opius2017/Finmfb-sub006/internal/types"
	"github.com/shopspring/decimal"
)

// MonthlyThreshold is the capacity record for one calendar month. It is
// created lazily on first reference and never deleted, forming an append-only
// ledger with one row per month.
type MonthlyThreshold struct {
	Timestamps
	Month           types.Month     `json:"month" gorm:"primaryKey" example:"2025-01"`                   // The month this record covers
	MaximumAmount   decimal.Decimal `json:"maximumAmount" gorm:"type:DECIMAL(20,8)" example:"3000000"`   // Policy ceiling on disbursed capital
	AllocatedAmount decimal.Decimal `json:"allocatedAmount" gorm:"type:DECIMAL(20,8)" example:"2000000"` // Capital already admitted this month
	ClosedAt        *time.Time      `json:"closedAt" example:"2025-02-01T00:05:00Z"`                     // Set once the month has been rolled over
}

// Remaining returns the capacity still available for admission.
func (t MonthlyThreshold) Remaining() decimal.Decimal {
	return t.MaximumAmount.Sub(t.AllocatedAmount)
}

// Utilization returns the allocated share of the maximum in percent. A zero
// maximum is reported as 0%, not as a division error.
func (t MonthlyThreshold) Utilization() decimal.Decimal {
	if t.MaximumAmount.IsZero() {
		return decimal.Zero
	}

	return t.AllocatedAmount.Div(t.MaximumAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

// Closed reports whether the month has been closed by rollover.
func (t MonthlyThreshold) Closed() bool {
	return t.ClosedAt != nil
}
