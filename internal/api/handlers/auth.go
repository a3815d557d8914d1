package handlers

import (
	"errors"
	"net/http"

	"github.com/campusrate/campusrate-backend/internal/services"
	"github.com/campusrate/campusrate-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	response, err := h.authService.Register(req)
	if err != nil {
		sendServiceError(c, "Registration failed", err)
		return
	}

	utils.SendSuccess(c, "Account created successfully", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.SendError(c, http.StatusUnauthorized, "Login failed", err)
			return
		}
		sendServiceError(c, "Login failed", err)
		return
	}

	utils.SendSuccess(c, "Login successful", response)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	response, err := h.authService.RefreshToken(req)
	if err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Token refresh failed", err)
		return
	}

	utils.SendSuccess(c, "Token refreshed successfully", response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		utils.SendInternalError(c, "Logout failed", err)
		return
	}

	utils.SendSuccess(c, "Logged out successfully", nil)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		utils.SendNotFound(c, "User not found", err)
		return
	}

	utils.SendSuccess(c, "Profile retrieved successfully", user)
}
