package handlers

import (
	"net/http"

	"github.com/campusrate/campusrate-backend/internal/services"
	"github.com/campusrate/campusrate-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// viewerID returns the authenticated user's id, or nil for anonymous
// callers (routes behind OptionalAuth).
func viewerID(c *gin.Context) *uint {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := value.(uint)
	if !ok {
		return nil
	}
	return &id
}

// sendServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is an unexpected persistence failure.
func sendServiceError(c *gin.Context, message string, err error) {
	switch {
	case services.IsValidation(err):
		utils.SendError(c, http.StatusBadRequest, message, err)
	case services.IsDuplicate(err):
		utils.SendError(c, http.StatusConflict, message, err)
	case services.IsNotFound(err):
		utils.SendNotFound(c, message, err)
	default:
		utils.SendInternalError(c, message, err)
	}
}
