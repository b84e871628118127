package ledger

import (
	"github.com/opius2017/Finmfb-sub006/internal/models"
	"github.com/opius2017/Finmfb-sub006/internal/types"
	"github.com/shopspring/decimal"
)

// UtilizationReport aggregates capacity usage for one month or a whole year.
type UtilizationReport struct {
	Year               int             `json:"year" example:"2025"`
	Month              *types.Month    `json:"month,omitempty" example:"2025-01"`  // Unset for a whole-year report
	MaximumAmount      decimal.Decimal `json:"maximumAmount" example:"3000000"`    // Ceiling, summed over the aggregated months
	AllocatedAmount    decimal.Decimal `json:"allocatedAmount" example:"2000000"`  // Admitted capital
	RemainingAmount    decimal.Decimal `json:"remainingAmount" example:"1000000"`  // Capacity still available
	UtilizationPercent decimal.Decimal `json:"utilizationPercent" example:"66.67"` // Allocated share of the maximum
	QueuedCount        int64           `json:"queuedCount" example:"1"`            // Applications still pending
}

// MonthReport returns the utilization of one month, creating the threshold on
// first reference.
func (l *Ledger) MonthReport(month types.Month) (UtilizationReport, error) {
	threshold, err := l.GetOrCreateThreshold(month)
	if err != nil {
		return UtilizationReport{}, err
	}

	queued, err := l.pendingCount(month, month.Next())
	if err != nil {
		return UtilizationReport{}, err
	}

	return UtilizationReport{
		Year:               month.Year(),
		Month:              &month,
		MaximumAmount:      threshold.MaximumAmount,
		AllocatedAmount:    threshold.AllocatedAmount,
		RemainingAmount:    threshold.Remaining(),
		UtilizationPercent: threshold.Utilization(),
		QueuedCount:        queued,
	}, nil
}

// YearReport aggregates the utilization over every threshold of the year.
// Months never referenced are not created and do not contribute.
func (l *Ledger) YearReport(year int) (UtilizationReport, error) {
	thresholds, err := l.ThresholdHistory(year)
	if err != nil {
		return UtilizationReport{}, err
	}

	report := UtilizationReport{
		Year:               year,
		MaximumAmount:      decimal.Zero,
		AllocatedAmount:    decimal.Zero,
		RemainingAmount:    decimal.Zero,
		UtilizationPercent: decimal.Zero,
	}

	for _, threshold := range thresholds {
		report.MaximumAmount = report.MaximumAmount.Add(threshold.MaximumAmount)
		report.AllocatedAmount = report.AllocatedAmount.Add(threshold.AllocatedAmount)
		report.RemainingAmount = report.RemainingAmount.Add(threshold.Remaining())
	}

	if !report.MaximumAmount.IsZero() {
		report.UtilizationPercent = report.AllocatedAmount.
			Div(report.MaximumAmount).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	queued, err := l.pendingCount(types.NewMonth(year, 1), types.NewMonth(year+1, 1))
	if err != nil {
		return UtilizationReport{}, err
	}
	report.QueuedCount = queued

	return report, nil
}

func (l *Ledger) pendingCount(from, until types.Month) (int64, error) {
	var count int64

	err := l.db.
		Model(&models.QueuedApplication{}).
		Where("month >= ? AND month < ? AND status = ?", from, until, models.ApplicationStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
