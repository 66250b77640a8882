package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Y4SHVINE/smart-product-assistant/internal/model"
)

// respondError is the fallback mapping from domain errors to flat
// {"error": message} bodies. Handlers translate NotFound and Conflict at the
// call site where a specific message is wanted; everything that falls
// through here is a server-side failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
