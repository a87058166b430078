// Package httpapi holds the gin engine, its middleware and the response
// envelope shared by the REST handlers.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Response is the envelope of every REST reply.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// Fail records err for the Errors middleware, which writes the response.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// HTTPStatus maps an error kind onto a response status.
func HTTPStatus(kind apperror.Kind) int {
	switch kind {
	case apperror.KindBadRequest:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case apperror.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// BindJSON decodes the request body; malformed JSON is a BAD_REQUEST.
func BindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return apperror.Wrap(apperror.KindBadRequest, "Invalid request body", err)
	}
	return nil
}

// QueryInt returns 0 for an absent parameter.
func QueryInt(c *gin.Context, name string) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Wrap(apperror.KindBadRequest, "Invalid query parameter: "+name, err)
	}
	return v, nil
}

// QueryDecimal returns nil for an absent parameter.
func QueryDecimal(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindBadRequest, "Invalid query parameter: "+name, err)
	}
	return &v, nil
}
