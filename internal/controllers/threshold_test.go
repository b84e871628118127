package controllers_test

import (
	"net/http"

	"github.com/opius2017/Finmfb-sub006/internal/controllers"
	"github.com/opius2017/Finmfb-sub006/internal/models"
	"github.com/opius2017/Finmfb-sub006/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestGetThresholdCreatesDefault() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/thresholds/2025-01", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.ThresholdResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "2025-01", response.Data.Month.String())
	assert.True(suite.T(), response.Data.MaximumAmount.Equal(decimal.NewFromInt(3000000)))
	assert.True(suite.T(), response.Data.AllocatedAmount.IsZero())
	assert.Nil(suite.T(), response.Data.ClosedAt)
}

func (suite *TestSuiteStandard) TestGetThresholdInvalidMonth() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/thresholds/not-a-month", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetThresholds() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/thresholds/2025-03", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/thresholds?year=2025", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.ThresholdListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)

	// Missing year parameter
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/thresholds", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCheckThreshold() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/thresholds/2025-01/check?amount=1000000", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.CheckResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Data.Admissible)
	assert.True(suite.T(), response.Data.AvailableCapacity.Equal(decimal.NewFromInt(3000000)))

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/thresholds/2025-01/check?amount=party", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/thresholds/2025-01/check?amount=-5", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAdmit() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(2000000),
		Note:            "Application LN-2025-0042",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.AdmissionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Data.Admitted)
	assert.True(suite.T(), response.Data.AvailableCapacity.Equal(decimal.NewFromInt(1000000)))
	assert.Nil(suite.T(), response.Data.Queued)

	// The second request does not fit and is queued
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(1500000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.False(suite.T(), response.Data.Admitted)
	require.NotNil(suite.T(), response.Data.Queued)
	assert.Equal(suite.T(), models.ApplicationStatusPending, response.Data.Queued.Status)
}

func (suite *TestSuiteStandard) TestAdmitInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", `{ "requestedAmount": `)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(-200),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateThreshold() {
	// Admit something first so lowering below it can fail
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(2000000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// Lowering below the allocated amount fails
	recorder = test.Request(suite.T(), http.MethodPatch, "/v1/thresholds/2025-01", controllers.ThresholdEditable{
		MaximumAmount: decimal.NewFromInt(1000000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// Raising beyond the system cap fails
	recorder = test.Request(suite.T(), http.MethodPatch, "/v1/thresholds/2025-01", controllers.ThresholdEditable{
		MaximumAmount: decimal.NewFromInt(999999999),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// A valid raise succeeds
	recorder = test.Request(suite.T(), http.MethodPatch, "/v1/thresholds/2025-01", controllers.ThresholdEditable{
		MaximumAmount: decimal.NewFromInt(4000000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.UpdateThresholdResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Data.MaximumAmount.Equal(decimal.NewFromInt(4000000)))
	assert.Empty(suite.T(), response.Released)
}

func (suite *TestSuiteStandard) TestUpdateThresholdReleasesQueue() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(2500000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(1000000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodPatch, "/v1/thresholds/2025-01", controllers.ThresholdEditable{
		MaximumAmount: decimal.NewFromInt(4000000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.UpdateThresholdResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.Len(suite.T(), response.Released, 1)
	assert.Equal(suite.T(), models.ApplicationStatusAdmitted, response.Released[0].Status)
	assert.True(suite.T(), response.Data.AllocatedAmount.Equal(decimal.NewFromInt(3500000)))
}

func (suite *TestSuiteStandard) TestQueueAndRelease() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(3000000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(500000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/thresholds/2025-01/queue", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var queue controllers.QueueListResponse
	test.DecodeResponse(suite.T(), &recorder, &queue)

	require.Len(suite.T(), queue.Data, 1)
	assert.Equal(suite.T(), 1, queue.Data[0].Position)

	// Nothing fits yet, the release is empty
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/queue/release", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var released controllers.ReleaseResponse
	test.DecodeResponse(suite.T(), &recorder, &released)
	assert.Empty(suite.T(), released.Data)
}

func (suite *TestSuiteStandard) TestRolloverEndpoint() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(1000000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/rollover", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.RolloverResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "2025-01", response.Data.ClosedMonth)
	assert.True(suite.T(), response.Data.Leftover.Equal(decimal.NewFromInt(2000000)))
	assert.False(suite.T(), response.Data.AlreadyProcessed)

	// The replay is a no-op
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/rollover", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.AlreadyProcessed)

	// Admission against the closed month fails
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(100),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
