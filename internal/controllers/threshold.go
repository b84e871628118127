package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/opius2017/Finmfb-sub006/internal/httputil"
	"github.com/opius2017/Finmfb-sub006/internal/ledger"
	"github.com/opius2017/Finmfb-sub006/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterThresholdRoutes registers the routes for monthly thresholds with
// the RouterGroup that is passed.
func (co Controller) RegisterThresholdRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", co.GetThresholds)
	}

	// Threshold for a specific month
	{
		r.OPTIONS("/:month", httputil.OptionsGetPatch)
		r.GET("/:month", co.GetThreshold)
		r.PATCH("/:month", co.UpdateThreshold)

		r.OPTIONS("/:month/check", httputil.OptionsGet)
		r.GET("/:month/check", co.CheckThreshold)

		r.OPTIONS("/:month/admit", httputil.OptionsPost)
		r.POST("/:month/admit", co.Admit)

		r.OPTIONS("/:month/rollover", httputil.OptionsPost)
		r.POST("/:month/rollover", co.Rollover)

		r.OPTIONS("/:month/queue", httputil.OptionsGet)
		r.GET("/:month/queue", co.GetQueue)

		r.OPTIONS("/:month/queue/release", httputil.OptionsPost)
		r.POST("/:month/queue/release", co.ReleaseQueue)
	}
}

type ThresholdResponse struct {
	Data models.MonthlyThreshold `json:"data"`
}

type ThresholdListResponse struct {
	Data []models.MonthlyThreshold `json:"data"`
}

// ThresholdEditable is the set of threshold fields a PATCH may change.
type ThresholdEditable struct {
	MaximumAmount decimal.Decimal `json:"maximumAmount" example:"2500000"`
}

// UpdateThresholdResponse carries the updated threshold together with the
// queued applications the raise released.
type UpdateThresholdResponse struct {
	Data     models.MonthlyThreshold    `json:"data"`
	Released []models.QueuedApplication `json:"released"`
}

type CheckResponse struct {
	Data ledger.CheckResult `json:"data"`
}

// AdmissionEditable is the request body for an admission attempt.
type AdmissionEditable struct {
	RequestedAmount decimal.Decimal `json:"requestedAmount" example:"1500000"`
	Note            string          `json:"note" example:"Application LN-2025-0042"`
}

type AdmissionResponse struct {
	Data ledger.AdmissionResult `json:"data"`
}

type RolloverResponse struct {
	Data ledger.RolloverResult `json:"data"`
}

type QueueListResponse struct {
	Data []ledger.QueueEntry `json:"data"`
}

type ReleaseResponse struct {
	Data []models.QueuedApplication `json:"data"`
}

// @Summary      List thresholds
// @Description  Returns the monthly thresholds of a year
// @Tags         Thresholds
// @Produce      json
// @Param        year  query     int  true  "Year to list thresholds for"
// @Success      200   {object}  ThresholdListResponse
// @Failure      400   {object}  httputil.HTTPError
// @Failure      500   {object}  httputil.HTTPError
// @Router       /v1/thresholds [get]
func (co Controller) GetThresholds(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidYear)
		return
	}

	thresholds, err := co.Ledger.ThresholdHistory(year)
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, ThresholdListResponse{Data: thresholds})
}

// @Summary      Get threshold
// @Description  Returns the threshold for a month, creating it on first reference
// @Tags         Thresholds
// @Produce      json
// @Param        month  path      string  true  "The month in YYYY-MM format"
// @Success      200    {object}  ThresholdResponse
// @Failure      400    {object}  httputil.HTTPError
// @Failure      500    {object}  httputil.HTTPError
// @Router       /v1/thresholds/{month} [get]
func (co Controller) GetThreshold(c *gin.Context) {
	month, err := httputil.ParseMonthParam(c, "month")
	if err != nil {
		return
	}

	threshold, err := co.Ledger.GetOrCreateThreshold(month)
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, ThresholdResponse{Data: threshold})
}

// @Summary      Update threshold
// @Description  Updates the maximum amount of a month. Raising it releases queued applications in arrival order
// @Tags         Thresholds
// @Accept       json
// @Produce      json
// @Param        month      path      string             true  "The month in YYYY-MM format"
// @Param        threshold  body      ThresholdEditable  true  "Threshold"
// @Success      200        {object}  UpdateThresholdResponse
// @Failure      400        {object}  httputil.HTTPError
// @Failure      500        {object}  httputil.HTTPError
// @Router       /v1/thresholds/{month} [patch]
func (co Controller) UpdateThreshold(c *gin.Context) {
	month, err := httputil.ParseMonthParam(c, "month")
	if err != nil {
		return
	}

	var data ThresholdEditable
	if code, err := httputil.BindData(c, &data); err != nil {
		httputil.NewError(c, code, err)
		return
	}

	threshold, released, err := co.Ledger.UpdateThreshold(month, data.MaximumAmount)
	if err != nil {
		errorHandler(c, err)
		return
	}

	if released == nil {
		released = []models.QueuedApplication{}
	}

	c.JSON(http.StatusOK, UpdateThresholdResponse{Data: threshold, Released: released})
}

// @Summary      Check capacity
// @Description  Answers whether an amount would currently be admitted, without committing anything
// @Tags         Thresholds
// @Produce      json
// @Param        month   path      string  true  "The month in YYYY-MM format"
// @Param        amount  query     string  true  "The amount to check"
// @Success      200     {object}  CheckResponse
// @Failure      400     {object}  httputil.HTTPError
// @Failure      500     {object}  httputil.HTTPError
// @Router       /v1/thresholds/{month}/check [get]
func (co Controller) CheckThreshold(c *gin.Context) {
	month, err := httputil.ParseMonthParam(c, "month")
	if err != nil {
		return
	}

	amount, ok := parseAmountQuery(c.Query("amount"))
	if !ok {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidAmount)
		return
	}

	result, err := co.Ledger.CheckThreshold(month, amount)
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckResponse{Data: result})
}

// @Summary      Admit amount
// @Description  Admits the amount against the month's capacity, queueing it when it does not fit
// @Tags         Thresholds
// @Accept       json
// @Produce      json
// @Param        month      path      string             true  "The month in YYYY-MM format"
// @Param        admission  body      AdmissionEditable  true  "Admission"
// @Success      200        {object}  AdmissionResponse
// @Failure      400        {object}  httputil.HTTPError
// @Failure      500        {object}  httputil.HTTPError
// @Router       /v1/thresholds/{month}/admit [post]
func (co Controller) Admit(c *gin.Context) {
	month, err := httputil.ParseMonthParam(c, "month")
	if err != nil {
		return
	}

	var data AdmissionEditable
	if code, err := httputil.BindData(c, &data); err != nil {
		httputil.NewError(c, code, err)
		return
	}

	result, err := co.Ledger.Admit(month, data.RequestedAmount, data.Note)
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, AdmissionResponse{Data: result})
}

// @Summary      Roll over month
// @Description  Closes the month, seeds the next month's threshold and expires pending applications. Replays are no-ops
// @Tags         Thresholds
// @Produce      json
// @Param        month  path      string  true  "The month in YYYY-MM format"
// @Success      200    {object}  RolloverResponse
// @Failure      400    {object}  httputil.HTTPError
// @Failure      500    {object}  httputil.HTTPError
// @Router       /v1/thresholds/{month}/rollover [post]
func (co Controller) Rollover(c *gin.Context) {
	month, err := httputil.ParseMonthParam(c, "month")
	if err != nil {
		return
	}

	result, err := co.Ledger.ProcessMonthlyRollover(month)
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, RolloverResponse{Data: result})
}

// @Summary      List queue
// @Description  Returns the month's queued applications in arrival order with their positions
// @Tags         Queue
// @Produce      json
// @Param        month  path      string  true  "The month in YYYY-MM format"
// @Success      200    {object}  QueueListResponse
// @Failure      400    {object}  httputil.HTTPError
// @Failure      500    {object}  httputil.HTTPError
// @Router       /v1/thresholds/{month}/queue [get]
func (co Controller) GetQueue(c *gin.Context) {
	month, err := httputil.ParseMonthParam(c, "month")
	if err != nil {
		return
	}

	entries, err := co.Ledger.QueuedApplications(month)
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, QueueListResponse{Data: entries})
}

// @Summary      Release queue
// @Description  Admits queued applications in arrival order as far as the current capacity allows
// @Tags         Queue
// @Produce      json
// @Param        month  path      string  true  "The month in YYYY-MM format"
// @Success      200    {object}  ReleaseResponse
// @Failure      400    {object}  httputil.HTTPError
// @Failure      500    {object}  httputil.HTTPError
// @Router       /v1/thresholds/{month}/queue/release [post]
func (co Controller) ReleaseQueue(c *gin.Context) {
	month, err := httputil.ParseMonthParam(c, "month")
	if err != nil {
		return
	}

	released, err := co.Ledger.ReleaseQueuedApplications(month)
	if err != nil {
		errorHandler(c, err)
		return
	}

	if released == nil {
		released = []models.QueuedApplication{}
	}

	c.JSON(http.StatusOK, ReleaseResponse{Data: released})
}
