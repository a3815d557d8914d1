package handlers

import (
	"strconv"

	"github.com/campusrate/campusrate-backend/internal/services"
	"github.com/campusrate/campusrate-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListAllReviews(c *gin.Context) {
	reviews, err := h.adminService.ListAllReviews()
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch reviews", err)
		return
	}

	utils.SendSuccess(c, "Reviews retrieved successfully", reviews)
}

func (h *AdminHandler) DeleteReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	if err := h.adminService.DeleteReview(uint(reviewID)); err != nil {
		sendServiceError(c, "Failed to delete review", err)
		return
	}

	utils.SendSuccess(c, "Review deleted successfully", nil)
}

func (h *AdminHandler) DeleteReply(c *gin.Context) {
	replyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid reply ID")
		return
	}

	if err := h.adminService.DeleteReply(uint(replyID)); err != nil {
		sendServiceError(c, "Failed to delete reply", err)
		return
	}

	utils.SendSuccess(c, "Reply deleted successfully", nil)
}

func (h *AdminHandler) DeleteProfessor(c *gin.Context) {
	professorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid professor ID")
		return
	}

	if err := h.adminService.DeleteProfessor(uint(professorID)); err != nil {
		sendServiceError(c, "Failed to delete professor", err)
		return
	}

	utils.SendSuccess(c, "Professor deleted successfully", nil)
}
