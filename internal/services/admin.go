package services

import (
	"errors"

	"github.com/campusrate/campusrate-backend/internal/models"
	"gorm.io/gorm"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

type AdminReviewResponse struct {
	ID            uint   `json:"id"`
	ProfessorID   uint   `json:"professor_id"`
	ProfessorName string `json:"professor_name"`
	AuthorName    string `json:"author_name"`
	CourseCode    string `json:"course_code"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	CreatedAt     string `json:"created_at"`
}

// ListAllReviews returns every review with author and professor names
// resolved, newest first.
func (s *AdminService) ListAllReviews() ([]AdminReviewResponse, error) {
	var reviews []models.Review
	if err := s.db.Preload("User").Preload("Professor").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, errors.New("failed to fetch reviews")
	}

	response := make([]AdminReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		authorName := anonymousName
		if review.User != nil {
			authorName = review.User.Username
		}
		response = append(response, AdminReviewResponse{
			ID:            review.ID,
			ProfessorID:   review.ProfessorID,
			ProfessorName: review.Professor.Name,
			AuthorName:    authorName,
			CourseCode:    review.CourseCode,
			Rating:        review.Rating,
			Comment:       review.Comment,
			CreatedAt:     review.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return response, nil
}

// DeleteReview removes a review together with its votes and replies in one
// transaction; no dependent rows survive.
func (s *AdminService) DeleteReview(reviewID uint) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteReviewCascade(tx, reviewID)
	})
}

func (s *AdminService) DeleteReply(replyID uint) error {
	var reply models.ReviewReply
	if err := s.db.First(&reply, replyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReplyNotFound
		}
		return err
	}
	return s.db.Delete(&reply).Error
}

// DeleteProfessor removes a professor and cascades through its reviews to
// their votes and replies, all in one transaction.
func (s *AdminService) DeleteProfessor(professorID uint) error {
	var professor models.Professor
	if err := s.db.First(&professor, professorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfessorNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var reviewIDs []uint
		if err := tx.Model(&models.Review{}).
			Where("professor_id = ?", professorID).
			Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}
		for _, reviewID := range reviewIDs {
			if err := deleteReviewCascade(tx, reviewID); err != nil {
				return err
			}
		}
		return tx.Delete(&models.Professor{}, professorID).Error
	})
}

func deleteReviewCascade(tx *gorm.DB, reviewID uint) error {
	if err := tx.Where("review_id = ?", reviewID).Delete(&models.ReviewVote{}).Error; err != nil {
		return err
	}
	if err := tx.Where("review_id = ?", reviewID).Delete(&models.ReviewReply{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Review{}, reviewID).Error
}
