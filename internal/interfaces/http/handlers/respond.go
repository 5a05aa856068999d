// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/winston-coffee/ordering-backend/internal/pkg/apperrors"
)

// respondError translates an application error into an HTTP response.
// Validation failures surface their message; everything else gets the
// fallback so internals never leak to clients.
func respondError(c *gin.Context, err error, fallback string) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperrors.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{
				"error": appErr.Message,
			})
			return
		case apperrors.KindGateway:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": fallback,
			})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": fallback,
	})
}
