package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opius2017/Finmfb-sub006/internal/amortization"
	"github.com/opius2017/Finmfb-sub006/internal/httputil"
	"github.com/shopspring/decimal"
)

// RegisterScheduleRoutes registers the routes for repayment schedules with
// the RouterGroup that is passed.
func (co Controller) RegisterScheduleRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", co.GenerateSchedule)
}

// ScheduleEditable is the request body for a schedule computation.
type ScheduleEditable struct {
	Principal          decimal.Decimal `json:"principal" example:"1200000"`                 // Amount to disburse
	AnnualInterestRate decimal.Decimal `json:"annualInterestRate" example:"18"`             // Annual rate in percent
	TenorMonths        int             `json:"tenorMonths" example:"12"`                    // Number of monthly installments
	FirstDueDate       time.Time       `json:"firstDueDate" example:"2025-02-01T00:00:00Z"` // Due date of the first installment
}

// Schedule is a full amortization schedule with its derived totals.
type Schedule struct {
	MonthlyPayment decimal.Decimal            `json:"monthlyPayment" example:"110015.99"` // The constant annuity payment
	TotalInterest  decimal.Decimal            `json:"totalInterest" example:"120191.88"`  // Interest paid over the full tenor
	TotalPayment   decimal.Decimal            `json:"totalPayment" example:"1320191.88"`  // Principal plus interest
	Installments   []amortization.Installment `json:"installments"`
}

type ScheduleResponse struct {
	Data Schedule `json:"data"`
}

// @Summary      Generate schedule
// @Description  Computes the annuity repayment schedule for a principal, rate and tenor
// @Tags         Schedules
// @Accept       json
// @Produce      json
// @Param        schedule  body      ScheduleEditable  true  "Schedule"
// @Success      200       {object}  ScheduleResponse
// @Failure      400       {object}  httputil.HTTPError
// @Failure      500       {object}  httputil.HTTPError
// @Router       /v1/schedules [post]
func (co Controller) GenerateSchedule(c *gin.Context) {
	var data ScheduleEditable
	if code, err := httputil.BindData(c, &data); err != nil {
		httputil.NewError(c, code, err)
		return
	}

	schedule, err := buildSchedule(data)
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, ScheduleResponse{Data: schedule})
}

func buildSchedule(data ScheduleEditable) (Schedule, error) {
	installments, err := amortization.Generate(data.Principal, data.AnnualInterestRate, data.TenorMonths, data.FirstDueDate)
	if err != nil {
		return Schedule{}, err
	}

	payment, err := amortization.MonthlyPayment(data.Principal, data.AnnualInterestRate, data.TenorMonths)
	if err != nil {
		return Schedule{}, err
	}

	totalInterest := decimal.Zero
	totalPayment := decimal.Zero
	for _, installment := range installments {
		totalInterest = totalInterest.Add(installment.Interest)
		totalPayment = totalPayment.Add(installment.TotalPayment)
	}

	return Schedule{
		MonthlyPayment: payment,
		TotalInterest:  totalInterest,
		TotalPayment:   totalPayment,
		Installments:   installments,
	}, nil
}
