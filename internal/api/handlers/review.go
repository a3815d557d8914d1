package handlers

import (
	"strconv"

	"github.com/campusrate/campusrate-backend/internal/services"
	"github.com/campusrate/campusrate-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
	voteService   *services.VoteService
}

func NewReviewHandler(reviewService *services.ReviewService, voteService *services.VoteService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, voteService: voteService}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	professorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid professor ID")
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	review, err := h.reviewService.AddReview(uint(professorID), req, viewerID(c))
	if err != nil {
		sendServiceError(c, "Failed to create review", err)
		return
	}

	utils.SendSuccess(c, "Review created successfully", review)
}

// CastVote returns the recomputed counts and the caller's resulting state as
// structured data; the front end updates in place rather than reloading.
func (h *ReviewHandler) CastVote(c *gin.Context) {
	userID := c.GetUint("user_id")

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	var req struct {
		VoteType int `json:"vote_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	result, err := h.voteService.CastVote(userID, uint(reviewID), req.VoteType)
	if err != nil {
		sendServiceError(c, "Failed to cast vote", err)
		return
	}

	utils.SendSuccess(c, "Vote recorded", result)
}

func (h *ReviewHandler) CreateReply(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	var req services.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	reply, err := h.reviewService.AddReply(uint(reviewID), req, viewerID(c))
	if err != nil {
		sendServiceError(c, "Failed to create reply", err)
		return
	}

	utils.SendSuccess(c, "Reply created successfully", reply)
}
