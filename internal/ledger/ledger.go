// Package ledger enforces the monthly ceiling on disbursed loan capital.
//
// One MonthlyThreshold record exists per calendar month. Admission is a
// single check-then-increment executed under a per-month lock, so concurrent
// requests can never overdraw the ceiling; requests that do not fit are
// queued in arrival order instead of being rejected.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/opius2017/Finmfb-sub006/internal/models"
	"github.com/opius2017/Finmfb-sub006/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Config carries the capacity policy of a Ledger.
type Config struct {
	// SystemCap is the absolute upper bound for any month's maximum amount.
	SystemCap decimal.Decimal

	// DefaultMaximum seeds a month that has no predecessor to inherit from.
	DefaultMaximum decimal.Decimal

	// Policy decides the starting maximum after a rollover. Defaults to
	// ResetPolicy with DefaultMaximum as baseline.
	Policy RolloverPolicy

	// Now is the time source, defaulting to time.Now in UTC.
	Now func() time.Time
}

// Ledger is the only writer of MonthlyThreshold and QueuedApplication state.
type Ledger struct {
	db     *gorm.DB
	cfg    Config
	locks  *monthLocks
	policy RolloverPolicy
	now    func() time.Time
}

// New returns a Ledger using the database connection and config.
func New(db *gorm.DB, cfg Config) *Ledger {
	policy := cfg.Policy
	if policy == nil {
		policy = ResetPolicy{Baseline: cfg.DefaultMaximum}
	}

	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().In(time.UTC) }
	}

	return &Ledger{
		db:     db,
		cfg:    cfg,
		locks:  newMonthLocks(),
		policy: policy,
		now:    now,
	}
}

// CheckResult is the read-only capacity projection for one request.
type CheckResult struct {
	Admissible        bool            `json:"admissible" example:"true"`           // Would the amount be admitted right now?
	AvailableCapacity decimal.Decimal `json:"availableCapacity" example:"1000000"` // Capacity remaining for the month
}

// AdmissionResult is the outcome of an admission attempt. A queued request is
// a successful response, not a failure.
type AdmissionResult struct {
	Admitted          bool                      `json:"admitted" example:"false"`           // Was the amount admitted?
	AvailableCapacity decimal.Decimal           `json:"availableCapacity" example:"500000"` // Capacity remaining after the decision
	Queued            *models.QueuedApplication `json:"queued,omitempty"`                   // The queue entry created on overflow
}

// QueueEntry is a queued application together with its derived position among
// the pending entries of its month. Position is zero for entries that are no
// longer pending.
type QueueEntry struct {
	models.QueuedApplication
	Position int `json:"queuePosition" example:"1"`
}

// GetOrCreateThreshold returns the threshold for the month, creating it on
// first reference. A new month inherits the prior month's maximum amount, or
// the configured default if no prior month exists.
func (l *Ledger) GetOrCreateThreshold(month types.Month) (models.MonthlyThreshold, error) {
	lock := l.locks.get(month)
	lock.Lock()
	defer lock.Unlock()

	return l.getOrCreateLocked(month)
}

func (l *Ledger) getOrCreateLocked(month types.Month) (models.MonthlyThreshold, error) {
	var threshold models.MonthlyThreshold

	err := l.db.First(&threshold, "month = ?", month).Error
	if err == nil {
		return threshold, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) && !isNotFound(err) {
		return models.MonthlyThreshold{}, err
	}

	maximum := l.cfg.DefaultMaximum

	var previous models.MonthlyThreshold
	err = l.db.First(&previous, "month = ?", month.Previous()).Error
	if err == nil {
		maximum = previous.MaximumAmount
	}

	if maximum.GreaterThan(l.cfg.SystemCap) {
		maximum = l.cfg.SystemCap
	}

	threshold = models.MonthlyThreshold{
		Month:           month,
		MaximumAmount:   maximum,
		AllocatedAmount: decimal.Zero,
	}

	err = l.db.Create(&threshold).Error
	if err != nil {
		return models.MonthlyThreshold{}, err
	}

	return threshold, nil
}

// CheckThreshold reports whether the amount would be admitted for the month.
// It never mutates the allocation.
func (l *Ledger) CheckThreshold(month types.Month, amount decimal.Decimal) (CheckResult, error) {
	if !amount.IsPositive() {
		return CheckResult{}, models.ErrAmountNotPositive
	}

	threshold, err := l.GetOrCreateThreshold(month)
	if err != nil {
		return CheckResult{}, err
	}

	remaining := threshold.Remaining()

	return CheckResult{
		Admissible:        !threshold.Closed() && remaining.GreaterThanOrEqual(amount),
		AvailableCapacity: remaining,
	}, nil
}

// Admit attempts to allocate the amount for the month. If the remaining
// capacity covers the amount the allocation is incremented; otherwise the
// request is parked as a pending queued application and the allocation is
// left untouched.
func (l *Ledger) Admit(month types.Month, amount decimal.Decimal, note string) (AdmissionResult, error) {
	if !amount.IsPositive() {
		return AdmissionResult{}, models.ErrAmountNotPositive
	}

	lock := l.locks.get(month)
	lock.Lock()
	defer lock.Unlock()

	threshold, err := l.getOrCreateLocked(month)
	if err != nil {
		return AdmissionResult{}, err
	}

	if threshold.Closed() {
		return AdmissionResult{}, models.ErrMonthClosed
	}

	if threshold.Remaining().GreaterThanOrEqual(amount) {
		threshold.AllocatedAmount = threshold.AllocatedAmount.Add(amount)

		err = l.db.Save(&threshold).Error
		if err != nil {
			return AdmissionResult{}, err
		}

		admissionsTotal.WithLabelValues("admitted").Inc()

		return AdmissionResult{
			Admitted:          true,
			AvailableCapacity: threshold.Remaining(),
		}, nil
	}

	queued := models.QueuedApplication{
		Month:           month,
		RequestedAmount: amount,
		EnqueuedAt:      l.now(),
		Status:          models.ApplicationStatusPending,
		Note:            note,
	}

	err = l.db.Create(&queued).Error
	if err != nil {
		return AdmissionResult{}, err
	}

	admissionsTotal.WithLabelValues("queued").Inc()

	return AdmissionResult{
		Admitted:          false,
		AvailableCapacity: threshold.Remaining(),
		Queued:            &queued,
	}, nil
}

// UpdateThreshold changes the month's maximum amount. Lowering it below the
// already allocated capital or raising it above the system cap fails. When
// the update frees capacity, pending queued applications are released in
// arrival order; the released entries are returned.
func (l *Ledger) UpdateThreshold(month types.Month, newMaximum decimal.Decimal) (models.MonthlyThreshold, []models.QueuedApplication, error) {
	if !newMaximum.IsPositive() {
		return models.MonthlyThreshold{}, nil, models.ErrMaximumNotPositive
	}

	if newMaximum.GreaterThan(l.cfg.SystemCap) {
		return models.MonthlyThreshold{}, nil, models.ErrMaximumExceedsSystemCap
	}

	lock := l.locks.get(month)
	lock.Lock()
	defer lock.Unlock()

	threshold, err := l.getOrCreateLocked(month)
	if err != nil {
		return models.MonthlyThreshold{}, nil, err
	}

	if threshold.Closed() {
		return models.MonthlyThreshold{}, nil, models.ErrMonthClosed
	}

	if newMaximum.LessThan(threshold.AllocatedAmount) {
		return models.MonthlyThreshold{}, nil, models.ErrMaximumBelowAllocated
	}

	threshold.MaximumAmount = newMaximum

	err = l.db.Save(&threshold).Error
	if err != nil {
		return models.MonthlyThreshold{}, nil, err
	}

	released, err := l.releaseLocked(&threshold)
	if err != nil {
		return models.MonthlyThreshold{}, nil, err
	}

	return threshold, released, nil
}

// ReleaseQueuedApplications admits pending applications of the month in
// arrival order for as long as the remaining capacity covers them. The first
// entry that does not fit stops the release; later, smaller entries are not
// allowed to jump the queue.
func (l *Ledger) ReleaseQueuedApplications(month types.Month) ([]models.QueuedApplication, error) {
	lock := l.locks.get(month)
	lock.Lock()
	defer lock.Unlock()

	threshold, err := l.getOrCreateLocked(month)
	if err != nil {
		return nil, err
	}

	if threshold.Closed() {
		return nil, models.ErrMonthClosed
	}

	return l.releaseLocked(&threshold)
}

func (l *Ledger) releaseLocked(threshold *models.MonthlyThreshold) ([]models.QueuedApplication, error) {
	var pending []models.QueuedApplication

	err := l.db.
		Where(&models.QueuedApplication{Month: threshold.Month, Status: models.ApplicationStatusPending}).
		Order("enqueued_at ASC").
		Find(&pending).Error
	if err != nil {
		return nil, err
	}

	released := make([]models.QueuedApplication, 0, len(pending))
	for _, application := range pending {
		if threshold.Remaining().LessThan(application.RequestedAmount) {
			break
		}

		threshold.AllocatedAmount = threshold.AllocatedAmount.Add(application.RequestedAmount)
		application.Status = models.ApplicationStatusAdmitted

		err = l.db.Save(&application).Error
		if err != nil {
			return nil, err
		}

		released = append(released, application)
	}

	if len(released) > 0 {
		err = l.db.Save(threshold).Error
		if err != nil {
			return nil, err
		}

		admissionsTotal.WithLabelValues("released").Add(float64(len(released)))
	}

	return released, nil
}

// QueuedApplications returns the month's queue in arrival order, with derived
// positions for the pending entries.
func (l *Ledger) QueuedApplications(month types.Month) ([]QueueEntry, error) {
	var applications []models.QueuedApplication

	err := l.db.
		Where(&models.QueuedApplication{Month: month}).
		Order("enqueued_at ASC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}

	entries := make([]QueueEntry, 0, len(applications))

	position := 0
	for _, application := range applications {
		entry := QueueEntry{QueuedApplication: application}

		if application.Status == models.ApplicationStatusPending {
			position++
			entry.Position = position
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// CancelQueuedApplication cancels a pending queued application.
func (l *Ledger) CancelQueuedApplication(id uuid.UUID) (models.QueuedApplication, error) {
	var application models.QueuedApplication

	err := l.db.First(&application, "id = ?", id).Error
	if err != nil {
		return models.QueuedApplication{}, err
	}

	lock := l.locks.get(application.Month)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock, the status may have changed.
	err = l.db.First(&application, "id = ?", id).Error
	if err != nil {
		return models.QueuedApplication{}, err
	}

	if application.Status != models.ApplicationStatusPending {
		return models.QueuedApplication{}, models.ErrApplicationNotPending
	}

	application.Status = models.ApplicationStatusCancelled

	err = l.db.Save(&application).Error
	if err != nil {
		return models.QueuedApplication{}, err
	}

	return application, nil
}

// ProcessMonthlyRollover closes the month: its leftover capacity is computed,
// the rollover policy seeds the following month's maximum, and applications
// still pending are expired. Replaying the rollover for an already closed
// month is a no-op reporting the original outcome.
func (l *Ledger) ProcessMonthlyRollover(month types.Month) (RolloverResult, error) {
	lock := l.locks.get(month)
	lock.Lock()
	defer lock.Unlock()

	threshold, err := l.getOrCreateLocked(month)
	if err != nil {
		return RolloverResult{}, err
	}

	if threshold.Closed() {
		next, err := l.nextThreshold(month)
		if err != nil {
			return RolloverResult{}, err
		}

		return RolloverResult{
			ClosedMonth:      month.String(),
			Leftover:         threshold.Remaining(),
			NextMaximum:      next.MaximumAmount,
			AlreadyProcessed: true,
		}, nil
	}

	leftover := threshold.Remaining()

	nextMaximum := l.policy.NextMaximum(threshold)
	if nextMaximum.GreaterThan(l.cfg.SystemCap) {
		nextMaximum = l.cfg.SystemCap
	}

	// Expire everything still waiting for this month.
	var pending []models.QueuedApplication
	err = l.db.
		Where(&models.QueuedApplication{Month: month, Status: models.ApplicationStatusPending}).
		Find(&pending).Error
	if err != nil {
		return RolloverResult{}, err
	}

	for i := range pending {
		pending[i].Status = models.ApplicationStatusExpired

		err = l.db.Save(&pending[i]).Error
		if err != nil {
			return RolloverResult{}, err
		}
	}

	closedAt := l.now()
	threshold.ClosedAt = &closedAt

	err = l.db.Save(&threshold).Error
	if err != nil {
		return RolloverResult{}, err
	}

	nextMaximum, err = l.seedNextMonth(month.Next(), nextMaximum)
	if err != nil {
		return RolloverResult{}, err
	}

	rolloversTotal.Inc()

	return RolloverResult{
		ClosedMonth:         month.String(),
		Leftover:            leftover,
		NextMaximum:         nextMaximum,
		ExpiredApplications: len(pending),
	}, nil
}

// seedNextMonth sets the starting maximum of the month following a rollover.
// If the month already exists with allocations, the maximum never drops below
// the allocated capital.
func (l *Ledger) seedNextMonth(month types.Month, maximum decimal.Decimal) (decimal.Decimal, error) {
	lock := l.locks.get(month)
	lock.Lock()
	defer lock.Unlock()

	next, err := l.getOrCreateLocked(month)
	if err != nil {
		return decimal.Zero, err
	}

	if maximum.LessThan(next.AllocatedAmount) {
		maximum = next.AllocatedAmount
	}

	next.MaximumAmount = maximum

	err = l.db.Save(&next).Error
	if err != nil {
		return decimal.Zero, err
	}

	return maximum, nil
}

func (l *Ledger) nextThreshold(month types.Month) (models.MonthlyThreshold, error) {
	var next models.MonthlyThreshold

	err := l.db.First(&next, "month = ?", month.Next()).Error
	if err != nil {
		return models.MonthlyThreshold{}, err
	}

	return next, nil
}

// ThresholdHistory returns all thresholds of the year in calendar order.
func (l *Ledger) ThresholdHistory(year int) ([]models.MonthlyThreshold, error) {
	var thresholds []models.MonthlyThreshold

	err := l.db.
		Where("month >= ? AND month < ?", types.NewMonth(year, 1), types.NewMonth(year+1, 1)).
		Order("month ASC").
		Find(&thresholds).Error
	if err != nil {
		return nil, err
	}

	return thresholds, nil
}

// isNotFound reports whether the error is the translated record-not-found
// error produced by the query callbacks.
func isNotFound(err error) bool {
	return errors.Is(err, models.ErrResourceNotFound)
}
