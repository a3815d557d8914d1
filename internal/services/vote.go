package services

import (
	"errors"

	"github.com/campusrate/campusrate-backend/internal/models"
	"gorm.io/gorm"
)

type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// VoteResult carries the recomputed counts and the caller's vote state after
// the transition. UserVote is 1, -1 or 0.
type VoteResult struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
	UserVote int   `json:"user_vote"`
}

// CastVote runs the toggle/switch/insert transition for one (user, review)
// pair:
//
//	no existing vote          -> insert the requested vote
//	existing vote, same type  -> delete it (toggle off)
//	existing vote, other type -> overwrite it in place (switch)
//
// The whole read-modify-write, including the recount, runs in a single
// transaction; together with the unique index on (user_id, review_id) this
// keeps at most one vote row per pair even under concurrent requests.
func (s *VoteService) CastVote(userID, reviewID uint, voteType int) (*VoteResult, error) {
	if voteType != models.VoteLike && voteType != models.VoteDislike {
		return nil, ErrInvalidVoteType
	}

	var result VoteResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}

		var existing models.ReviewVote
		err := tx.Where("user_id = ? AND review_id = ?", userID, reviewID).First(&existing).Error
		switch {
		case err == nil && existing.VoteType == voteType:
			// Toggle off
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result.UserVote = models.VoteNone
		case err == nil:
			// Switch
			existing.VoteType = voteType
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result.UserVote = voteType
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.ReviewVote{
				UserID:   userID,
				ReviewID: reviewID,
				VoteType: voteType,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			result.UserVote = voteType
		default:
			return err
		}

		// Recount from the vote rows inside the same transaction so the
		// returned counts always match the persisted state.
		if err := tx.Model(&models.ReviewVote{}).
			Where("review_id = ? AND vote_type = ?", reviewID, models.VoteLike).
			Count(&result.Likes).Error; err != nil {
			return err
		}
		return tx.Model(&models.ReviewVote{}).
			Where("review_id = ? AND vote_type = ?", reviewID, models.VoteDislike).
			Count(&result.Dislikes).Error
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// UserVote returns the caller's current vote on a review, 0 when none.
func (s *VoteService) UserVote(userID, reviewID uint) (int, error) {
	var vote models.ReviewVote
	err := s.db.Where("user_id = ? AND review_id = ?", userID, reviewID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.VoteNone, nil
	}
	if err != nil {
		return models.VoteNone, err
	}
	return vote.VoteType, nil
}
