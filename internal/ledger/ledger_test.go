package ledger_test

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opius2017/Finmfb-sub006/internal/ledger"
	"github.com/opius2017/Finmfb-sub006/internal/models"
	"github.com/opius2017/Finmfb-sub006/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var january = types.NewMonth(2025, 1)

func (suite *TestSuiteStandard) TestGetOrCreateThresholdDefaults() {
	l := suite.testLedger()

	threshold, err := l.GetOrCreateThreshold(january)
	require.NoError(suite.T(), err)

	assert.True(suite.T(), threshold.MaximumAmount.Equal(decimal.NewFromInt(3000000)))
	assert.True(suite.T(), threshold.AllocatedAmount.IsZero())
	assert.False(suite.T(), threshold.Closed())
}

// TestGetOrCreateThresholdInherits verifies that a new month starts with the
// prior month's maximum, not the system default.
func (suite *TestSuiteStandard) TestGetOrCreateThresholdInherits() {
	l := suite.testLedger()

	_, _, err := l.UpdateThreshold(january, decimal.NewFromInt(2500000))
	require.NoError(suite.T(), err)

	february, err := l.GetOrCreateThreshold(january.Next())
	require.NoError(suite.T(), err)

	assert.True(suite.T(), february.MaximumAmount.Equal(decimal.NewFromInt(2500000)))
}

func (suite *TestSuiteStandard) TestCheckThreshold() {
	l := suite.testLedger()

	check, err := l.CheckThreshold(january, decimal.NewFromInt(1000000))
	require.NoError(suite.T(), err)
	assert.True(suite.T(), check.Admissible)
	assert.True(suite.T(), check.AvailableCapacity.Equal(decimal.NewFromInt(3000000)))

	// The projection must not mutate the allocation.
	threshold, err := l.GetOrCreateThreshold(january)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), threshold.AllocatedAmount.IsZero())

	_, err = l.CheckThreshold(january, decimal.Zero)
	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
}

// TestAdmit runs the basic admission sequence: a 2,000,000 admission against
// a 3,000,000 ceiling succeeds, the following 1,500,000 is queued.
func (suite *TestSuiteStandard) TestAdmit() {
	l := suite.testLedger()

	first, err := l.Admit(january, decimal.NewFromInt(2000000), "")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), first.Admitted)
	assert.True(suite.T(), first.AvailableCapacity.Equal(decimal.NewFromInt(1000000)))
	assert.Nil(suite.T(), first.Queued)

	second, err := l.Admit(january, decimal.NewFromInt(1500000), "")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), second.Admitted)
	require.NotNil(suite.T(), second.Queued)
	assert.True(suite.T(), second.Queued.RequestedAmount.Equal(decimal.NewFromInt(1500000)))
	assert.Equal(suite.T(), models.ApplicationStatusPending, second.Queued.Status)

	// The queued request did not touch the allocation.
	threshold, err := l.GetOrCreateThreshold(january)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), threshold.AllocatedAmount.Equal(decimal.NewFromInt(2000000)))
}

func (suite *TestSuiteStandard) TestAdmitInvalidAmount() {
	l := suite.testLedger()

	_, err := l.Admit(january, decimal.Zero, "")
	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)

	_, err = l.Admit(january, decimal.NewFromInt(-5), "")
	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
}

// TestAdmitConservation verifies that allocated + remaining equals the
// maximum after every single admission.
func (suite *TestSuiteStandard) TestAdmitConservation() {
	l := suite.testLedger()

	amounts := []int64{100000, 999999, 1, 1400000, 600000, 42}
	for _, amount := range amounts {
		_, err := l.Admit(january, decimal.NewFromInt(amount), "")
		require.NoError(suite.T(), err)

		threshold, err := l.GetOrCreateThreshold(january)
		require.NoError(suite.T(), err)

		sum := threshold.AllocatedAmount.Add(threshold.Remaining())
		assert.True(suite.T(), sum.Equal(threshold.MaximumAmount),
			"conservation violated after admitting %d: %s + %s != %s",
			amount, threshold.AllocatedAmount, threshold.Remaining(), threshold.MaximumAmount)
		assert.False(suite.T(), threshold.Remaining().IsNegative())
	}
}

// TestAdmitConcurrent hammers one month from many goroutines. The admitted
// amounts must never overdraw the ceiling; everything else must be queued.
func (suite *TestSuiteStandard) TestAdmitConcurrent() {
	l := suite.testLedger()

	requests := 20
	amount := decimal.NewFromInt(500000)

	var wg sync.WaitGroup
	results := make([]ledger.AdmissionResult, requests)

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			result, err := l.Admit(january, amount, "")
			assert.NoError(suite.T(), err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	admitted := 0
	queued := 0
	for _, result := range results {
		if result.Admitted {
			admitted++
		} else {
			queued++
		}
	}

	// 3,000,000 / 500,000 = 6 slots
	assert.Equal(suite.T(), 6, admitted)
	assert.Equal(suite.T(), requests-6, queued)

	threshold, err := l.GetOrCreateThreshold(january)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), threshold.AllocatedAmount.Equal(decimal.NewFromInt(3000000)))
	assert.True(suite.T(), threshold.Remaining().IsZero())
}

// TestUpdateThreshold lowers and raises the ceiling within its bounds.
func (suite *TestSuiteStandard) TestUpdateThreshold() {
	l := suite.testLedger()

	threshold, _, err := l.UpdateThreshold(january, decimal.NewFromInt(1000000))
	require.NoError(suite.T(), err)
	assert.True(suite.T(), threshold.MaximumAmount.Equal(decimal.NewFromInt(1000000)))

	_, err = l.Admit(january, decimal.NewFromInt(800000), "")
	require.NoError(suite.T(), err)

	// Lowering below the allocated capital must fail.
	_, _, err = l.UpdateThreshold(january, decimal.NewFromInt(500000))
	assert.ErrorIs(suite.T(), err, models.ErrMaximumBelowAllocated)

	// The system cap is the hard upper bound.
	_, _, err = l.UpdateThreshold(january, decimal.NewFromInt(3500000))
	assert.ErrorIs(suite.T(), err, models.ErrMaximumExceedsSystemCap)

	_, _, err = l.UpdateThreshold(january, decimal.Zero)
	assert.ErrorIs(suite.T(), err, models.ErrMaximumNotPositive)
}

// TestUpdateThresholdReleasesQueue verifies that raising the ceiling releases
// pending applications in arrival order.
func (suite *TestSuiteStandard) TestUpdateThresholdReleasesQueue() {
	l := suite.testLedgerWithConfig(ledger.Config{
		SystemCap:      decimal.NewFromInt(3000000),
		DefaultMaximum: decimal.NewFromInt(1000000),
		Now:            fixedTime(time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)),
	})

	_, err := l.Admit(january, decimal.NewFromInt(1000000), "")
	require.NoError(suite.T(), err)

	first, err := l.Admit(january, decimal.NewFromInt(600000), "first in line")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), first.Queued)

	second, err := l.Admit(january, decimal.NewFromInt(400000), "second in line")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), second.Queued)

	_, released, err := l.UpdateThreshold(january, decimal.NewFromInt(2000000))
	require.NoError(suite.T(), err)

	require.Len(suite.T(), released, 2)
	assert.Equal(suite.T(), first.Queued.ID, released[0].ID)
	assert.Equal(suite.T(), second.Queued.ID, released[1].ID)

	threshold, err := l.GetOrCreateThreshold(january)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), threshold.AllocatedAmount.Equal(decimal.NewFromInt(2000000)))
}

// TestReleaseStrictFIFO verifies that a release stops at the first entry that
// does not fit. Smaller entries behind it may not jump the queue.
func (suite *TestSuiteStandard) TestReleaseStrictFIFO() {
	l := suite.testLedgerWithConfig(ledger.Config{
		SystemCap:      decimal.NewFromInt(3000000),
		DefaultMaximum: decimal.NewFromInt(1000000),
		Now:            fixedTime(time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)),
	})

	_, err := l.Admit(january, decimal.NewFromInt(1000000), "")
	require.NoError(suite.T(), err)

	// 900,000 will not fit after the raise, 100,000 would.
	big, err := l.Admit(january, decimal.NewFromInt(900000), "")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), big.Queued)

	small, err := l.Admit(january, decimal.NewFromInt(100000), "")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), small.Queued)

	_, released, err := l.UpdateThreshold(january, decimal.NewFromInt(1500000))
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), released)

	entries, err := l.QueuedApplications(january)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), entries, 2)
	assert.Equal(suite.T(), models.ApplicationStatusPending, entries[0].Status)
	assert.Equal(suite.T(), models.ApplicationStatusPending, entries[1].Status)
}

func (suite *TestSuiteStandard) TestQueuedApplicationsPositions() {
	l := suite.testLedgerWithConfig(ledger.Config{
		SystemCap:      decimal.NewFromInt(3000000),
		DefaultMaximum: decimal.NewFromInt(100000),
		Now:            fixedTime(time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)),
	})

	for i := 0; i < 3; i++ {
		result, err := l.Admit(january, decimal.NewFromInt(200000), "")
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), result.Queued)
	}

	entries, err := l.QueuedApplications(january)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), entries, 3)

	for i, entry := range entries {
		assert.Equal(suite.T(), i+1, entry.Position)
		assert.Equal(suite.T(), models.ApplicationStatusPending, entry.Status)
	}
}

func (suite *TestSuiteStandard) TestCancelQueuedApplication() {
	l := suite.testLedgerWithConfig(ledger.Config{
		SystemCap:      decimal.NewFromInt(3000000),
		DefaultMaximum: decimal.NewFromInt(100000),
	})

	result, err := l.Admit(january, decimal.NewFromInt(200000), "")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), result.Queued)

	cancelled, err := l.CancelQueuedApplication(result.Queued.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ApplicationStatusCancelled, cancelled.Status)

	// A second cancellation must fail, the application is no longer pending.
	_, err = l.CancelQueuedApplication(result.Queued.ID)
	assert.ErrorIs(suite.T(), err, models.ErrApplicationNotPending)

	// Unknown IDs are a not-found error.
	_, err = l.CancelQueuedApplication(uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestThresholdHistory() {
	l := suite.testLedger()

	for month := 1; month <= 3; month++ {
		_, err := l.GetOrCreateThreshold(types.NewMonth(2025, time.Month(month)))
		require.NoError(suite.T(), err)
	}

	// A month in another year must not show up.
	_, err := l.GetOrCreateThreshold(types.NewMonth(2024, 12))
	require.NoError(suite.T(), err)

	history, err := l.ThresholdHistory(2025)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), history, 3)

	for i, threshold := range history {
		assert.True(suite.T(), types.NewMonth(2025, time.Month(i+1)).Equal(threshold.Month))
	}
}
