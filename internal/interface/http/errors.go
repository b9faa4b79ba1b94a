package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-user-accounts/pkg/response"
	"github.com/oksasatya/go-ddd-user-accounts/pkg/validation"
)

var statusByKind = map[domainerr.Kind]int{
	domainerr.KindValidation:     http.StatusBadRequest,
	domainerr.KindMatching:       http.StatusBadRequest,
	domainerr.KindInvalidState:   http.StatusUnprocessableEntity,
	domainerr.KindNotFound:       http.StatusNotFound,
	domainerr.KindDuplicateEmail: http.StatusConflict,
}

// StatusFor maps a domain error kind to its HTTP status.
func StatusFor(kind domainerr.Kind) int {
	if s, ok := statusByKind[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Kind    domainerr.Kind `json:"kind"`
	Details any            `json:"details,omitempty"`
}

// writeError renders domain failures with their public details. Anything
// else is logged and answered with a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	de, ok := domainerr.As(err)
	if !ok {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Error[any](c, StatusFor(de.Kind()), de.Message(), errorBody{
		Kind:    de.Kind(),
		Details: de.PublicDetails(),
	})
}

func writeBindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid request", errorBody{
		Kind:    domainerr.KindValidation,
		Details: validation.ToDetails(err),
	})
}
