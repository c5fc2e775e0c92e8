package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"orphanage-api/internal/repository"
)

// errorResponse writes the shared error body shape. The error name is the
// standard reason phrase for the status; message is optional detail.
func errorResponse(c *gin.Context, status int, message string) {
	body := gin.H{"error": http.StatusText(status)}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func forbidden(c *gin.Context, message string) {
	errorResponse(c, http.StatusForbidden, message)
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.logger.WithError(err).Error("unexpected error")
	errorResponse(c, http.StatusInternalServerError, "")
}

// handleEntityError maps repository sentinel errors onto the API error
// taxonomy; anything unrecognized becomes an opaque 500.
func (h *Handler) handleEntityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		errorResponse(c, http.StatusNotFound, "")
	case errors.Is(err, repository.ErrDuplicateUsername):
		badRequest(c, "Please use a different username")
	case errors.Is(err, repository.ErrDuplicateEmail):
		badRequest(c, "Please use a different email address")
	case errors.Is(err, repository.ErrDuplicateName):
		badRequest(c, "Please use a different orphanage name")
	case errors.Is(err, repository.ErrReferenced):
		badRequest(c, "Record has donations attached and cannot be deleted")
	default:
		h.serverError(c, err)
	}
}
