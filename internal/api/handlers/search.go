package handlers

import (
	"github.com/campusrate/campusrate-backend/internal/services"
	"github.com/campusrate/campusrate-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) Search(c *gin.Context) {
	result, err := h.searchService.Search(c.Query("q"))
	if err != nil {
		sendServiceError(c, "Search failed", err)
		return
	}

	utils.SendSuccess(c, "Search completed", result)
}

// ListCourseCodes serves the autocomplete index of known course codes.
func (h *SearchHandler) ListCourseCodes(c *gin.Context) {
	codes, err := h.searchService.ListCourseCodes(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch course codes", err)
		return
	}

	utils.SendSuccess(c, "Course codes retrieved successfully", codes)
}

func (h *SearchHandler) FindProfessorsForCourse(c *gin.Context) {
	professors, err := h.searchService.FindProfessorsForCourse(c.Query("q"))
	if err != nil {
		sendServiceError(c, "Course lookup failed", err)
		return
	}

	utils.SendSuccess(c, "Professors retrieved successfully", professors)
}
