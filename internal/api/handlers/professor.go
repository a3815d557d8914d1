package handlers

import (
	"strconv"

	"github.com/campusrate/campusrate-backend/internal/models"
	"github.com/campusrate/campusrate-backend/internal/services"
	"github.com/campusrate/campusrate-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ProfessorHandler struct {
	professorService *services.ProfessorService
}

func NewProfessorHandler(professorService *services.ProfessorService) *ProfessorHandler {
	return &ProfessorHandler{professorService: professorService}
}

func (h *ProfessorHandler) ListProfessors(c *gin.Context) {
	var filter services.ProfessorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendValidationError(c, "Invalid filter parameters")
		return
	}

	response, err := h.professorService.ListProfessors(filter)
	if err != nil {
		sendServiceError(c, "Failed to fetch professors", err)
		return
	}

	utils.SendSuccess(c, "Professors retrieved successfully", response)
}

func (h *ProfessorHandler) GetProfessor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid professor ID")
		return
	}

	courseFilter := c.Query("course")
	detail, err := h.professorService.GetProfessor(uint(id), courseFilter, viewerID(c))
	if err != nil {
		sendServiceError(c, "Failed to fetch professor", err)
		return
	}

	utils.SendSuccess(c, "Professor retrieved successfully", detail)
}

func (h *ProfessorHandler) CreateProfessor(c *gin.Context) {
	var req services.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	// Only a professor account links the new record to itself; students
	// adding a walk-in professor leave it unlinked.
	var ownerID *uint
	if c.GetString("user_role") == models.RoleProfessor {
		ownerID = viewerID(c)
	}

	professor, err := h.professorService.CreateProfessor(req, ownerID)
	if err != nil {
		sendServiceError(c, "Failed to create professor", err)
		return
	}

	utils.SendSuccess(c, "Professor created successfully", professor)
}

func (h *ProfessorHandler) Dashboard(c *gin.Context) {
	userID := c.GetUint("user_id")

	detail, err := h.professorService.Dashboard(userID)
	if err != nil {
		sendServiceError(c, "Failed to fetch dashboard", err)
		return
	}

	utils.SendSuccess(c, "Dashboard retrieved successfully", detail)
}
