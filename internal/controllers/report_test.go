package controllers_test

import (
	"net/http"

	"github.com/opius2017/Finmfb-sub006/internal/controllers"
	"github.com/opius2017/Finmfb-sub006/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetReportMonth() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(2000000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/reports?year=2025&month=2025-01", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.ReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), 2025, response.Data.Year)
	assert.NotNil(suite.T(), response.Data.Month)
	assert.True(suite.T(), response.Data.AllocatedAmount.Equal(decimal.NewFromInt(2000000)))
	assert.True(suite.T(), response.Data.UtilizationPercent.Equal(decimal.NewFromFloat(66.67)))
}

func (suite *TestSuiteStandard) TestGetReportYear() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(1500000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/reports?year=2025", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.ReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Nil(suite.T(), response.Data.Month)
	assert.True(suite.T(), response.Data.UtilizationPercent.Equal(decimal.NewFromInt(50)))
}

func (suite *TestSuiteStandard) TestGetReportInvalid() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/reports", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/reports?year=2025&month=bogus", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
