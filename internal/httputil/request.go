package httputil

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opius2017/Finmfb-sub006/internal/types"
	"github.com/rs/zerolog/log"
)

// BindData binds the JSON request body to the struct passed in.
func BindData(c *gin.Context, data any) (int, error) {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return http.StatusBadRequest, ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return http.StatusBadRequest, ErrInvalidBody
	}

	return http.StatusOK, nil
}

// ParseMonthParam parses the named URL parameter as a YYYY-MM month.
func ParseMonthParam(c *gin.Context, param string) (types.Month, error) {
	month, err := types.ParseMonth(c.Param(param))
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidMonth)
		return types.Month{}, err
	}

	return month, nil
}

// ParseUUIDParam parses the named URL parameter as a UUID.
func ParseUUIDParam(c *gin.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidUUID)
		return uuid.Nil, err
	}

	return id, nil
}
