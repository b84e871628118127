package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opius2017/Finmfb-sub006/internal/eligibility"
	"github.com/opius2017/Finmfb-sub006/internal/httputil"
	"github.com/opius2017/Finmfb-sub006/internal/models"
)

// RegisterEligibilityRoutes registers the routes for eligibility checks with
// the RouterGroup that is passed.
func (co Controller) RegisterEligibilityRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", co.Evaluate)
}

// EligibilityEditable is the request body for an eligibility check. The
// limits come either from a stored loan product or inline; a product ID wins
// when both are given.
type EligibilityEditable struct {
	Candidate eligibility.Candidate `json:"candidate"`
	ProductID *uuid.UUID            `json:"productId" example:"53a4d213-866a-4c06-b0bb-4f0f02b0974c"`
	Limits    *eligibility.Limits   `json:"limits"`
}

type EligibilityResponse struct {
	Data eligibility.Result `json:"data"`
}

// @Summary      Evaluate eligibility
// @Description  Checks a candidate against product limits and the debt service policy. Ineligibility is a valid 200 response with reasons, not an error
// @Tags         Eligibility
// @Accept       json
// @Produce      json
// @Param        evaluation  body      EligibilityEditable  true  "Evaluation"
// @Success      200         {object}  EligibilityResponse
// @Failure      400         {object}  httputil.HTTPError
// @Failure      404         {object}  httputil.HTTPError
// @Failure      500         {object}  httputil.HTTPError
// @Router       /v1/eligibility [post]
func (co Controller) Evaluate(c *gin.Context) {
	var data EligibilityEditable
	if code, err := httputil.BindData(c, &data); err != nil {
		httputil.NewError(c, code, err)
		return
	}

	limits, err := co.resolveLimits(data)
	if err != nil {
		errorHandler(c, err)
		return
	}

	result, err := co.Evaluator.Evaluate(data.Candidate, limits)
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, EligibilityResponse{Data: result})
}

// resolveLimits loads the limits for an evaluation from the referenced loan
// product, falling back to the inline limits.
func (co Controller) resolveLimits(data EligibilityEditable) (eligibility.Limits, error) {
	if data.ProductID != nil {
		var product models.LoanProduct

		err := models.DB.First(&product, "id = ?", *data.ProductID).Error
		if err != nil {
			return eligibility.Limits{}, err
		}

		if product.Archived {
			return eligibility.Limits{}, models.ErrProductArchived
		}

		return limitsFromProduct(product), nil
	}

	if data.Limits != nil {
		return *data.Limits, nil
	}

	return eligibility.Limits{}, httputil.ErrLimitsMissing
}
