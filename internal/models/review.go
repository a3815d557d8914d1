package models

import (
	"time"
)

// Vote types stored in review_votes.vote_type. Neutral is never stored;
// no row for a (user, review) pair means the user has not voted.
const (
	VoteLike    = 1
	VoteDislike = -1
	VoteNone    = 0
)

type Review struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProfessorID uint      `json:"professor_id" gorm:"not null;index"`
	UserID      *uint     `json:"user_id,omitempty"` // nil means anonymous review
	CourseCode  string    `json:"course_code" gorm:"not null"`
	Rating      int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment     string    `json:"comment"`
	Grade       string    `json:"grade,omitempty"`
	Semester    string    `json:"semester,omitempty"`
	Year        *int      `json:"year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User      *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Professor Professor     `json:"professor,omitempty"`
	Votes     []ReviewVote  `json:"votes,omitempty"`
	Replies   []ReviewReply `json:"replies,omitempty"`
}

// ReviewVote holds one user's current vote on one review. The unique index
// on (user_id, review_id) is the invariant the vote service depends on.
type ReviewVote struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_review_vote"`
	ReviewID uint `json:"review_id" gorm:"not null;uniqueIndex:idx_user_review_vote"`
	VoteType int  `json:"vote_type" gorm:"not null"` // 1 = like, -1 = dislike

	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Review Review `json:"-" gorm:"foreignKey:ReviewID"`
}

func (ReviewVote) TableName() string {
	return "review_votes"
}

// ReviewReply is a flat comment on a review; replies never nest.
type ReviewReply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ReviewID  uint      `json:"review_id" gorm:"not null;index"`
	UserID    *uint     `json:"user_id,omitempty"` // nil means anonymous reply
	Comment   string    `json:"comment" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	User   *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Review Review `json:"-" gorm:"foreignKey:ReviewID"`
}

func (ReviewReply) TableName() string {
	return "review_replies"
}
