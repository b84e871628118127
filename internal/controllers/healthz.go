package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opius2017/Finmfb-sub006/internal/httputil"
	"github.com/opius2017/Finmfb-sub006/internal/models"
)

// RegisterHealthzRoutes registers the health check routes with the
// RouterGroup that is passed.
func (co Controller) RegisterHealthzRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetHealthz)
}

// @Summary      Get health
// @Description  Returns the application health and, if not healthy, an error
// @Tags         General
// @Success      204
// @Failure      500  {object}  httputil.HTTPError
// @Router       /healthz [get]
func (co Controller) GetHealthz(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err != nil {
		errorHandler(c, err)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		errorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
