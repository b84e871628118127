package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/opius2017/Finmfb-sub006/internal/amortization"
	"github.com/opius2017/Finmfb-sub006/internal/eligibility"
	"github.com/opius2017/Finmfb-sub006/internal/httputil"
	"github.com/opius2017/Finmfb-sub006/internal/models"
	"github.com/rs/zerolog/log"
)

// status maps a domain error to the HTTP status of its response.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound

	case errors.Is(err, models.ErrAmountNotPositive),
		errors.Is(err, models.ErrMaximumNotPositive),
		errors.Is(err, models.ErrMaximumBelowAllocated),
		errors.Is(err, models.ErrMaximumExceedsSystemCap),
		errors.Is(err, models.ErrMonthClosed),
		errors.Is(err, models.ErrApplicationNotPending),
		errors.Is(err, models.ErrProductNameNotUnique),
		errors.Is(err, models.ErrProductArchived),
		errors.Is(err, models.ErrProductAmountRangeInvalid),
		errors.Is(err, models.ErrProductTenorRangeInvalid),
		errors.Is(err, models.ErrProductRateNegative),
		errors.Is(err, eligibility.ErrIncomeNotPositive),
		errors.Is(err, eligibility.ErrAmountNotPositive),
		errors.Is(err, eligibility.ErrTenorNotPositive),
		errors.Is(err, eligibility.ErrDebtNegative),
		errors.Is(err, amortization.ErrPrincipalNotPositive),
		errors.Is(err, amortization.ErrTenorNotPositive),
		errors.Is(err, amortization.ErrRateNegative),
		errors.Is(err, amortization.ErrPaymentNotPositive),
		errors.Is(err, httputil.ErrLimitsMissing):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// errorHandler writes the response for a domain error. Unexpected errors are
// logged with the request id and answered with a generic message.
func errorHandler(c *gin.Context, err error) {
	code := status(err)

	if code == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		httputil.NewError(c, code, models.ErrGeneral)
		return
	}

	httputil.NewError(c, code, err)
}
