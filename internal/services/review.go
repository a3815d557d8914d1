package services

import (
	"context"
	"errors"
	"math"

	"github.com/campusrate/campusrate-backend/internal/cache"
	"github.com/campusrate/campusrate-backend/internal/models"
	"github.com/campusrate/campusrate-backend/internal/utils"
	"github.com/campusrate/campusrate-backend/pkg/logger"
	"gorm.io/gorm"
)

const anonymousName = "Anonymous"

type ReviewService struct {
	db    *gorm.DB
	cache *cache.Client
}

func NewReviewService(db *gorm.DB, cacheClient *cache.Client) *ReviewService {
	return &ReviewService{db: db, cache: cacheClient}
}

type CreateReviewRequest struct {
	CourseCode string `json:"course_code" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
	Grade      string `json:"grade"`
	Semester   string `json:"semester"`
	Year       *int   `json:"year"`
}

type CreateReplyRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type ReplyResponse struct {
	ID         uint   `json:"id"`
	AuthorName string `json:"author_name"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"created_at"`
}

type ReviewResponse struct {
	ID         uint            `json:"id"`
	CourseCode string          `json:"course_code"`
	Rating     int             `json:"rating"`
	Comment    string          `json:"comment"`
	Grade      string          `json:"grade,omitempty"`
	Semester   string          `json:"semester,omitempty"`
	Year       *int            `json:"year,omitempty"`
	AuthorName string          `json:"author_name"`
	CreatedAt  string          `json:"created_at"`
	Likes      int64           `json:"likes"`
	Dislikes   int64           `json:"dislikes"`
	UserVote   int             `json:"user_vote"`
	Replies    []ReplyResponse `json:"replies"`
}

// AddReview creates a review for a professor. authorID is nil for anonymous
// reviews.
func (s *ReviewService) AddReview(professorID uint, req CreateReviewRequest, authorID *uint) (*models.Review, error) {
	if !utils.IsValidRating(req.Rating) {
		return nil, ErrInvalidRating
	}

	req.CourseCode = utils.SanitizeString(req.CourseCode)
	if req.CourseCode == "" {
		return nil, ErrEmptyCourseCode
	}

	var professor models.Professor
	if err := s.db.First(&professor, professorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		return nil, err
	}

	review := models.Review{
		ProfessorID: professorID,
		UserID:      authorID,
		CourseCode:  req.CourseCode,
		Rating:      req.Rating,
		Comment:     utils.SanitizeString(req.Comment),
		Grade:       utils.SanitizeString(req.Grade),
		Semester:    utils.SanitizeString(req.Semester),
		Year:        req.Year,
	}

	if err := s.db.Create(&review).Error; err != nil {
		return nil, errors.New("failed to create review")
	}

	// Refresh the derived course cache; failures here never fail the review.
	course := models.Course{Code: req.CourseCode}
	if err := s.db.Where("code = ?", req.CourseCode).FirstOrCreate(&course).Error; err != nil {
		logger.Warn("Failed to refresh course cache: ", err)
	}
	s.cache.InvalidateCourseCodes(context.Background())

	return &review, nil
}

// ListReviews returns a professor's reviews, newest first, each annotated
// with vote counts, the viewer's vote state and its replies oldest-first.
// courseFilter restricts to an exact course_code match; viewerID is nil for
// unauthenticated callers.
func (s *ReviewService) ListReviews(professorID uint, courseFilter string, viewerID *uint) ([]ReviewResponse, error) {
	var professor models.Professor
	if err := s.db.First(&professor, professorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		return nil, err
	}

	query := s.db.Preload("User").
		Where("professor_id = ?", professorID).
		Order("created_at DESC")
	if courseFilter != "" {
		query = query.Where("course_code = ?", courseFilter)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, errors.New("failed to fetch reviews")
	}

	return s.annotate(reviews, viewerID)
}

func (s *ReviewService) annotate(reviews []models.Review, viewerID *uint) ([]ReviewResponse, error) {
	response := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		var likes, dislikes int64
		s.db.Model(&models.ReviewVote{}).
			Where("review_id = ? AND vote_type = ?", review.ID, models.VoteLike).Count(&likes)
		s.db.Model(&models.ReviewVote{}).
			Where("review_id = ? AND vote_type = ?", review.ID, models.VoteDislike).Count(&dislikes)

		userVote := models.VoteNone
		if viewerID != nil {
			var vote models.ReviewVote
			if err := s.db.Where("user_id = ? AND review_id = ?", *viewerID, review.ID).
				First(&vote).Error; err == nil {
				userVote = vote.VoteType
			}
		}

		authorName := anonymousName
		if review.User != nil {
			authorName = review.User.Username
		}

		var replies []models.ReviewReply
		s.db.Preload("User").
			Where("review_id = ?", review.ID).
			Order("created_at ASC").
			Find(&replies)

		replyResponses := make([]ReplyResponse, 0, len(replies))
		for _, reply := range replies {
			replyAuthor := anonymousName
			if reply.User != nil {
				replyAuthor = reply.User.Username
			}
			replyResponses = append(replyResponses, ReplyResponse{
				ID:         reply.ID,
				AuthorName: replyAuthor,
				Comment:    reply.Comment,
				CreatedAt:  reply.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		response = append(response, ReviewResponse{
			ID:         review.ID,
			CourseCode: review.CourseCode,
			Rating:     review.Rating,
			Comment:    review.Comment,
			Grade:      review.Grade,
			Semester:   review.Semester,
			Year:       review.Year,
			AuthorName: authorName,
			CreatedAt:  review.CreatedAt.Format("2006-01-02 15:04:05"),
			Likes:      likes,
			Dislikes:   dislikes,
			UserVote:   userVote,
			Replies:    replyResponses,
		})
	}

	return response, nil
}

// AverageRating is the arithmetic mean of the ratings rounded to one decimal
// place; an empty set averages to 0.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

// AddReply attaches a flat reply to a review. authorID is nil for anonymous
// replies.
func (s *ReviewService) AddReply(reviewID uint, req CreateReplyRequest, authorID *uint) (*models.ReviewReply, error) {
	comment := utils.SanitizeString(req.Comment)
	if comment == "" {
		return nil, ErrEmptyComment
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	reply := models.ReviewReply{
		ReviewID: reviewID,
		UserID:   authorID,
		Comment:  comment,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, errors.New("failed to create reply")
	}

	return &reply, nil
}
