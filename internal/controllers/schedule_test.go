package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/opius2017/Finmfb-sub006/internal/controllers"
	"github.com/opius2017/Finmfb-sub006/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestGenerateSchedule() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/schedules", controllers.ScheduleEditable{
		Principal:          decimal.NewFromInt(1200000),
		AnnualInterestRate: decimal.NewFromInt(18),
		TenorMonths:        12,
		FirstDueDate:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.ScheduleResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.Len(suite.T(), response.Data.Installments, 12)
	assert.True(suite.T(), response.Data.MonthlyPayment.Equal(decimal.NewFromFloat(110015.99)),
		"monthly payment is %s", response.Data.MonthlyPayment)

	// The principal portions sum to exactly the principal
	sum := decimal.Zero
	for _, installment := range response.Data.Installments {
		sum = sum.Add(installment.Principal)
	}
	assert.True(suite.T(), sum.Equal(decimal.NewFromInt(1200000)), "principal sum is %s", sum)

	assert.True(suite.T(), response.Data.TotalPayment.Equal(decimal.NewFromInt(1200000).Add(response.Data.TotalInterest)))

	// The last installment clears the balance
	last := response.Data.Installments[11]
	assert.True(suite.T(), last.RemainingBalance.IsZero())
	assert.Equal(suite.T(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), last.DueDate)
}

func (suite *TestSuiteStandard) TestGenerateScheduleInvalid() {
	tests := []struct {
		name string
		body controllers.ScheduleEditable
	}{
		{"zero principal", controllers.ScheduleEditable{
			AnnualInterestRate: decimal.NewFromInt(18),
			TenorMonths:        12,
		}},
		{"zero tenor", controllers.ScheduleEditable{
			Principal:          decimal.NewFromInt(1200000),
			AnnualInterestRate: decimal.NewFromInt(18),
		}},
		{"negative rate", controllers.ScheduleEditable{
			Principal:          decimal.NewFromInt(1200000),
			AnnualInterestRate: decimal.NewFromInt(-1),
			TenorMonths:        12,
		}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "/v1/schedules", tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}
