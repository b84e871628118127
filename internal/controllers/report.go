package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/opius2017/Finmfb-sub006/internal/httputil"
	"github.com/opius2017/Finmfb-sub006/internal/ledger"
	"github.com/opius2017/Finmfb-sub006/internal/types"
)

// RegisterReportRoutes registers the routes for utilization reports with the
// RouterGroup that is passed.
func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetReport)
}

type ReportResponse struct {
	Data ledger.UtilizationReport `json:"data"`
}

// @Summary      Utilization report
// @Description  Returns the capacity utilization for a single month or aggregated over a year
// @Tags         Reports
// @Produce      json
// @Param        year   query     int     true   "Year to report on"
// @Param        month  query     string  false  "Limit the report to one month, YYYY-MM"
// @Success      200    {object}  ReportResponse
// @Failure      400    {object}  httputil.HTTPError
// @Failure      500    {object}  httputil.HTTPError
// @Router       /v1/reports [get]
func (co Controller) GetReport(c *gin.Context) {
	if monthString := c.Query("month"); monthString != "" {
		month, err := types.ParseMonth(monthString)
		if err != nil {
			httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidMonth)
			return
		}

		report, err := co.Ledger.MonthReport(month)
		if err != nil {
			errorHandler(c, err)
			return
		}

		c.JSON(http.StatusOK, ReportResponse{Data: report})
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidYear)
		return
	}

	report, err := co.Ledger.YearReport(year)
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, ReportResponse{Data: report})
}
