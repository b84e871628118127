package controllers_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/opius2017/Finmfb-sub006/internal/controllers"
	"github.com/opius2017/Finmfb-sub006/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProductEditable() controllers.LoanProductEditable {
	return controllers.LoanProductEditable{
		Name:               "Agro Equipment",
		MinAmount:          decimal.NewFromInt(250000),
		MaxAmount:          decimal.NewFromInt(3000000),
		MinTenorMonths:     12,
		MaxTenorMonths:     48,
		AnnualInterestRate: decimal.NewFromInt(15),
	}
}

func (suite *TestSuiteStandard) TestCreateProduct() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/products", testProductEditable())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response controllers.LoanProductResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "Agro Equipment", response.Data.Name)
	assert.NotEqual(suite.T(), uuid.Nil, response.Data.ID)
}

func (suite *TestSuiteStandard) TestCreateProductDuplicateName() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/products", testProductEditable())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/products", testProductEditable())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateProductInvalidRange() {
	data := testProductEditable()
	data.MinAmount = decimal.NewFromInt(4000000)

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/products", data)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	data = testProductEditable()
	data.MinTenorMonths = 60

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/products", data)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetProducts() {
	suite.createTestProduct()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/products", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.LoanProductListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestGetProduct() {
	product := suite.createTestProduct()

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/products/%s", product.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.LoanProductResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), product.ID, response.Data.ID)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/products/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/products/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateProduct() {
	product := suite.createTestProduct()

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/products/%s", product.ID), map[string]any{
		"name": "SME Working Capital Plus",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.LoanProductResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "SME Working Capital Plus", response.Data.Name)
}

func (suite *TestSuiteStandard) TestDeleteProduct() {
	product := suite.createTestProduct()

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/products/%s", product.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/products/%s", product.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCancelQueuedUnknown() {
	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/queue/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), http.MethodDelete, "/v1/queue/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCancelQueued() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(3000000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/thresholds/2025-01/admit", controllers.AdmissionEditable{
		RequestedAmount: decimal.NewFromInt(500000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var admission controllers.AdmissionResponse
	test.DecodeResponse(suite.T(), &recorder, &admission)
	require.NotNil(suite.T(), admission.Data.Queued)

	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/queue/%s", admission.Data.Queued.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// Cancelling twice fails, the application is no longer pending
	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/queue/%s", admission.Data.Queued.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
