package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/QuangTung97/eventstore/pkg/otellib"
	"github.com/QuangTung97/eventstore/service/eventstore"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errBadRequest is returned for malformed requests, it is a usage error
var errBadRequest = fmt.Errorf("%w: bad request", eventstore.ErrUsage)

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, eventstore.ErrStreamNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, eventstore.ErrStreamExistsAlready):
		return http.StatusConflict, "exists_already"
	case errors.Is(err, eventstore.ErrConcurrency):
		return http.StatusConflict, "concurrency"
	case errors.Is(err, eventstore.ErrUsage):
		return http.StatusBadRequest, "usage"
	default:
		return http.StatusInternalServerError, "storage"
	}
}

func writeError(c *gin.Context, err error) {
	status, kind := statusOf(err)
	if status == http.StatusInternalServerError {
		otellib.Extract(c.Request.Context()).Error("request failed", zap.Error(err))
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	c.JSON(status, errorResponse{
		Kind:    kind,
		Message: err.Error(),
	})
}
