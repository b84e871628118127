package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opius2017/Finmfb-sub006/internal/httputil"
	"github.com/opius2017/Finmfb-sub006/internal/models"
)

// RegisterQueueRoutes registers the routes for queued applications with the
// RouterGroup that is passed.
func (co Controller) RegisterQueueRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", httputil.OptionsDelete)
	r.DELETE("/:id", co.CancelQueuedApplication)
}

type QueuedApplicationResponse struct {
	Data models.QueuedApplication `json:"data"`
}

// @Summary      Cancel queued application
// @Description  Cancels a pending queued application. Applications that have already been admitted, expired or cancelled can not change state
// @Tags         Queue
// @Produce      json
// @Param        id  path      string  true  "ID of the queued application"
// @Success      200  {object}  QueuedApplicationResponse
// @Failure      400  {object}  httputil.HTTPError
// @Failure      404  {object}  httputil.HTTPError
// @Failure      500  {object}  httputil.HTTPError
// @Router       /v1/queue/{id} [delete]
func (co Controller) CancelQueuedApplication(c *gin.Context) {
	id, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		return
	}

	application, err := co.Ledger.CancelQueuedApplication(id)
	if err != nil {
		errorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, QueuedApplicationResponse{Data: application})
}
