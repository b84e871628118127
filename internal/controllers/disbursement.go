package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opius2017/Finmfb-sub006/internal/eligibility"
	"github.com/opius2017/Finmfb-sub006/internal/httputil"
	"github.com/opius2017/Finmfb-sub006/internal/ledger"
	"github.com/opius2017/Finmfb-sub006/internal/types"
)

// RegisterDisbursementRoutes registers the routes for the full disbursement
// flow with the RouterGroup that is passed.
func (co Controller) RegisterDisbursementRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", co.Disburse)
}

// DisbursementEditable is the request body for a full disbursement: the
// candidate is evaluated, the amount admitted against the month's capacity
// and, if admitted, the binding repayment schedule is computed.
type DisbursementEditable struct {
	Candidate    eligibility.Candidate `json:"candidate"`
	ProductID    *uuid.UUID            `json:"productId" example:"53a4d213-866a-4c06-b0bb-4f0f02b0974c"`
	Limits       *eligibility.Limits   `json:"limits"`
	Month        types.Month           `json:"month" example:"2025-01"`                     // Month the disbursement counts against
	FirstDueDate time.Time             `json:"firstDueDate" example:"2025-02-01T00:00:00Z"` // Due date of the first installment
	Note         string                `json:"note" example:"Application LN-2025-0042"`
}

// DisbursementResult is the outcome of a disbursement request. Exactly one of
// the three states holds: ineligible (Eligibility carries the reasons),
// queued (Admission.Queued is set) or disbursed (Schedule is set).
type DisbursementResult struct {
	Eligibility eligibility.Result      `json:"eligibility"`
	Admission   *ledger.AdmissionResult `json:"admission,omitempty"` // Unset when the candidate is ineligible
	Schedule    *Schedule               `json:"schedule,omitempty"`  // Only set once the amount is admitted
}

type DisbursementResponse struct {
	Data DisbursementResult `json:"data"`
}

// @Summary      Disburse loan
// @Description  Runs the full disbursement flow: eligibility check, admission against the monthly threshold and, if admitted, the binding repayment schedule. Ineligible and queued outcomes are valid 200 responses
// @Tags         Disbursements
// @Accept       json
// @Produce      json
// @Param        disbursement  body      DisbursementEditable  true  "Disbursement"
// @Success      200           {object}  DisbursementResponse
// @Failure      400           {object}  httputil.HTTPError
// @Failure      404           {object}  httputil.HTTPError
// @Failure      500           {object}  httputil.HTTPError
// @Router       /v1/disbursements [post]
func (co Controller) Disburse(c *gin.Context) {
	var data DisbursementEditable
	if code, err := httputil.BindData(c, &data); err != nil {
		httputil.NewError(c, code, err)
		return
	}

	if data.Month.IsZero() {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidMonth)
		return
	}

	limits, err := co.resolveLimits(EligibilityEditable{
		Candidate: data.Candidate,
		ProductID: data.ProductID,
		Limits:    data.Limits,
	})
	if err != nil {
		errorHandler(c, err)
		return
	}

	result, err := co.Evaluator.Evaluate(data.Candidate, limits)
	if err != nil {
		errorHandler(c, err)
		return
	}

	response := DisbursementResult{Eligibility: result}

	if !result.Eligible {
		c.JSON(http.StatusOK, DisbursementResponse{Data: response})
		return
	}

	admission, err := co.Ledger.Admit(data.Month, data.Candidate.RequestedAmount, data.Note)
	if err != nil {
		errorHandler(c, err)
		return
	}
	response.Admission = &admission

	// The schedule only becomes binding once capacity is committed. Queued
	// requests get theirs when they are released.
	if admission.Admitted {
		firstDue := data.FirstDueDate
		if firstDue.IsZero() {
			firstDue = data.Month.Next().FirstDay()
		}

		schedule, err := buildSchedule(ScheduleEditable{
			Principal:          data.Candidate.RequestedAmount,
			AnnualInterestRate: limits.AnnualInterestRate,
			TenorMonths:        data.Candidate.TenorMonths,
			FirstDueDate:       firstDue,
		})
		if err != nil {
			errorHandler(c, err)
			return
		}
		response.Schedule = &schedule
	}

	c.JSON(http.StatusOK, DisbursementResponse{Data: response})
}
