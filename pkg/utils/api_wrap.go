package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	log := logger.With(zap.String("trace_id", traceID(c)), zap.Error(err))

	var rangeErr *InvalidRangeError
	switch {
	case errors.As(err, &rangeErr):
		RespondError(c, http.StatusBadRequest, "End date must not be before start date")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUpstream):
		log.Warn("Upstream error")
		RespondError(c, http.StatusBadGateway, "Failed to generate itinerary. Please try again.")
	case errors.Is(err, ErrUnparseableResponse):
		log.Warn("Unparseable response")
		RespondError(c, http.StatusBadGateway, "Could not read the generated itinerary. Please try again.")
	default:
		log.Error("Unknown error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
