package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katryana/airport-api/internal/domain"
)

// respondError translates domain error kinds into the response contract:
// 400 with a field -> messages body for validation failures (uniqueness
// conflicts included), 401/403/404 for the sentinel kinds, 500 otherwise.
func respondError(c *gin.Context, err error) {
	if ve, ok := domain.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, ve.Fields)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
	}
}

// bindError renders gin binding failures in the same field-scoped shape the
// validation errors use.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{domain.NonFieldErrors: []string{err.Error()}})
}
