package services

import (
	"errors"
	"strings"

	"github.com/campusrate/campusrate-backend/internal/models"
	"github.com/campusrate/campusrate-backend/internal/utils"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ProfessorService struct {
	db             *gorm.DB
	reviewService  *ReviewService
	summaryService *SummaryService
}

func NewProfessorService(db *gorm.DB, reviewService *ReviewService, summaryService *SummaryService) *ProfessorService {
	if db == nil {
		panic("database connection cannot be nil")
	}
	return &ProfessorService{
		db:             db,
		reviewService:  reviewService,
		summaryService: summaryService,
	}
}

type ProfessorFilter struct {
	Department string `form:"department"`
	University string `form:"university"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type CreateProfessorRequest struct {
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
	University string `json:"university"`
}

type ProfessorListResponse struct {
	Professors []models.Professor `json:"professors"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type ProfessorDetail struct {
	Professor     models.Professor `json:"professor"`
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	Summary       *string          `json:"summary,omitempty"`
}

func (f *ProfessorFilter) normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Department = strings.TrimSpace(f.Department)
	f.University = strings.TrimSpace(f.University)
}

// ListProfessors returns professors with optional department/university
// filters and a case-insensitive name search, paginated.
func (s *ProfessorService) ListProfessors(filter ProfessorFilter) (*ProfessorListResponse, error) {
	filter.normalize()

	query := s.db.Model(&models.Professor{})
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.University != "" {
		query = query.Where("university = ?", filter.University)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.New("failed to count professors")
	}

	var professors []models.Professor
	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&professors).Error; err != nil {
		return nil, errors.New("failed to fetch professors")
	}

	return &ProfessorListResponse{
		Professors: professors,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// GetProfessor returns one professor with annotated reviews (optionally
// filtered by course), the average rating over the returned set and the
// criticism summary over all of the professor's reviews.
func (s *ProfessorService) GetProfessor(id uint, courseFilter string, viewerID *uint) (*ProfessorDetail, error) {
	var professor models.Professor
	if err := s.db.First(&professor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		return nil, err
	}

	annotated, err := s.reviewService.ListReviews(id, courseFilter, viewerID)
	if err != nil {
		return nil, err
	}

	var filtered []models.Review
	query := s.db.Where("professor_id = ?", id)
	if courseFilter != "" {
		query = query.Where("course_code = ?", courseFilter)
	}
	if err := query.Find(&filtered).Error; err != nil {
		return nil, errors.New("failed to fetch reviews")
	}

	// The summary always covers the full review set, not the filtered view.
	var all []models.Review
	if err := s.db.Where("professor_id = ?", id).Find(&all).Error; err != nil {
		return nil, errors.New("failed to fetch reviews")
	}

	return &ProfessorDetail{
		Professor:     professor,
		Reviews:       annotated,
		AverageRating: AverageRating(filtered),
		Summary:       s.summaryService.Summarize(all),
	}, nil
}

// CreateProfessor adds a professor record. userID links the record to the
// creating account when that account has the professor role; students adding
// a walk-in professor leave it nil.
func (s *ProfessorService) CreateProfessor(req CreateProfessorRequest, userID *uint) (*models.Professor, error) {
	req.Name = utils.SanitizeString(req.Name)
	if req.Name == "" {
		return nil, ErrEmptyName
	}

	professor := models.Professor{
		Name:       req.Name,
		Department: utils.SanitizeString(req.Department),
		University: utils.SanitizeString(req.University),
		UserID:     userID,
	}

	if err := s.db.Create(&professor).Error; err != nil {
		return nil, errors.New("failed to create professor")
	}

	return &professor, nil
}

// Dashboard returns the professor profile linked to the given account with
// its aggregated feedback. Only accounts with the professor role reach this
// through the routes; a professor account without a linked profile is a
// not-found condition.
func (s *ProfessorService) Dashboard(userID uint) (*ProfessorDetail, error) {
	var professor models.Professor
	if err := s.db.Where("user_id = ?", userID).First(&professor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		return nil, err
	}

	return s.GetProfessor(professor.ID, "", &userID)
}
