package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/campusrate/campusrate-backend/internal/cache"
	"github.com/campusrate/campusrate-backend/internal/models"
	"github.com/campusrate/campusrate-backend/internal/utils"
	"gorm.io/gorm"
)

type SearchService struct {
	db    *gorm.DB
	cache *cache.Client
}

func NewSearchService(db *gorm.DB, cacheClient *cache.Client) *SearchService {
	return &SearchService{db: db, cache: cacheClient}
}

type ProfessorRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CourseMatch struct {
	CourseCode string         `json:"course_code"`
	Professors []ProfessorRef `json:"professors"`
}

type SearchResult struct {
	Professors []models.Professor `json:"professors"`
	Courses    []CourseMatch      `json:"courses"`
}

// Search runs a case-insensitive substring match over professor names,
// departments, universities and review comments, plus a normalized match
// over course codes so "CS-101", "cs 101" and "CS101" are equivalent.
// Matched professors are deduplicated; matched courses are grouped by their
// literal stored code with the distinct professors reviewed under it.
func (s *SearchService) Search(query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	like := "%" + strings.ToLower(query) + "%"

	seen := make(map[uint]bool)
	var professors []models.Professor

	var byProfile []models.Professor
	if err := s.db.Where(
		"LOWER(name) LIKE ? OR LOWER(department) LIKE ? OR LOWER(university) LIKE ?",
		like, like, like,
	).Find(&byProfile).Error; err != nil {
		return nil, errors.New("search failed")
	}
	for _, p := range byProfile {
		if !seen[p.ID] {
			seen[p.ID] = true
			professors = append(professors, p)
		}
	}

	var byComment []models.Professor
	if err := s.db.
		Joins("JOIN reviews ON reviews.professor_id = professors.id").
		Where("LOWER(reviews.comment) LIKE ?", like).
		Distinct("professors.*").
		Find(&byComment).Error; err != nil {
		return nil, errors.New("search failed")
	}
	for _, p := range byComment {
		if !seen[p.ID] {
			seen[p.ID] = true
			professors = append(professors, p)
		}
	}

	courses, err := s.matchCourses(func(stored string) bool {
		return strings.Contains(utils.NormalizeCourseCode(stored), utils.NormalizeCourseCode(query))
	})
	if err != nil {
		return nil, err
	}

	if professors == nil {
		professors = []models.Professor{}
	}
	return &SearchResult{Professors: professors, Courses: courses}, nil
}

// FindProfessorsForCourse resolves a course query to the professors reviewed
// under it. Exact match on the normalized code wins; only when it yields
// nothing does the lookup fall back to a case-insensitive substring match on
// the raw stored codes.
func (s *SearchService) FindProfessorsForCourse(query string) ([]ProfessorRef, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	normalized := utils.NormalizeCourseCode(query)
	exact, err := s.matchCourses(func(stored string) bool {
		return utils.NormalizeCourseCode(stored) == normalized
	})
	if err != nil {
		return nil, err
	}
	if refs := flattenProfessors(exact); len(refs) > 0 {
		return refs, nil
	}

	lowered := strings.ToLower(query)
	fuzzy, err := s.matchCourses(func(stored string) bool {
		return strings.Contains(strings.ToLower(stored), lowered)
	})
	if err != nil {
		return nil, err
	}
	return flattenProfessors(fuzzy), nil
}

// ListCourseCodes returns the distinct course codes seen in reviews, for
// autocomplete. Served from the redis index when available and rebuilt from
// review rows on a miss.
func (s *SearchService) ListCourseCodes(ctx context.Context) ([]string, error) {
	if codes, ok := s.cache.GetCourseCodes(ctx); ok {
		return codes, nil
	}

	var codes []string
	if err := s.db.Model(&models.Review{}).
		Distinct("course_code").
		Order("course_code ASC").
		Pluck("course_code", &codes).Error; err != nil {
		return nil, errors.New("failed to fetch course codes")
	}

	s.cache.SetCourseCodes(ctx, codes)
	return codes, nil
}

type courseReviewRow struct {
	CourseCode    string
	ProfessorID   uint
	ProfessorName string
}

// matchCourses loads the distinct (course_code, professor) pairs from review
// rows and groups those accepted by match, keyed by literal stored code.
func (s *SearchService) matchCourses(match func(stored string) bool) ([]CourseMatch, error) {
	var rows []courseReviewRow
	if err := s.db.Model(&models.Review{}).
		Select("reviews.course_code AS course_code, professors.id AS professor_id, professors.name AS professor_name").
		Joins("JOIN professors ON professors.id = reviews.professor_id").
		Distinct().
		Order("reviews.course_code ASC").
		Scan(&rows).Error; err != nil {
		return nil, errors.New("failed to fetch courses")
	}

	grouped := make(map[string][]ProfessorRef)
	var codes []string
	dedup := make(map[string]map[uint]bool)
	for _, row := range rows {
		if !match(row.CourseCode) {
			continue
		}
		if _, ok := grouped[row.CourseCode]; !ok {
			grouped[row.CourseCode] = nil
			dedup[row.CourseCode] = make(map[uint]bool)
			codes = append(codes, row.CourseCode)
		}
		if !dedup[row.CourseCode][row.ProfessorID] {
			dedup[row.CourseCode][row.ProfessorID] = true
			grouped[row.CourseCode] = append(grouped[row.CourseCode], ProfessorRef{
				ID:   row.ProfessorID,
				Name: row.ProfessorName,
			})
		}
	}

	sort.Strings(codes)
	matches := make([]CourseMatch, 0, len(codes))
	for _, code := range codes {
		matches = append(matches, CourseMatch{CourseCode: code, Professors: grouped[code]})
	}
	return matches, nil
}

func flattenProfessors(matches []CourseMatch) []ProfessorRef {
	seen := make(map[uint]bool)
	refs := make([]ProfessorRef, 0)
	for _, match := range matches {
		for _, ref := range match.Professors {
			if !seen[ref.ID] {
				seen[ref.ID] = true
				refs = append(refs, ref)
			}
		}
	}
	return refs
}
