package services

import (
	"testing"

	"github.com/campusrate/campusrate-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteReviewCascades(t *testing.T) {
	db := setupTestDB(t)
	adminSvc := NewAdminService(db)
	voteSvc := NewVoteService(db)
	reviewSvc := NewReviewService(db, nil)

	user := createUser(t, db, "student", models.RoleStudent)
	professor := createProfessor(t, db, "Dr. Turing", "Computer Science", "Cambridge")
	review := createReview(t, db, professor.ID, &user.ID, "CS 101", 2, "meh")

	_, err := voteSvc.CastVote(user.ID, review.ID, models.VoteDislike)
	require.NoError(t, err)
	_, err = reviewSvc.AddReply(review.ID, CreateReplyRequest{Comment: "disagree"}, nil)
	require.NoError(t, err)

	require.NoError(t, adminSvc.DeleteReview(review.ID))

	// Votes and replies go with the review; nothing is orphaned
	var votes, replies, reviews int64
	db.Model(&models.ReviewVote{}).Where("review_id = ?", review.ID).Count(&votes)
	db.Model(&models.ReviewReply{}).Where("review_id = ?", review.ID).Count(&replies)
	db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&reviews)
	assert.Equal(t, int64(0), votes)
	assert.Equal(t, int64(0), replies)
	assert.Equal(t, int64(0), reviews)

	assert.ErrorIs(t, adminSvc.DeleteReview(review.ID), ErrReviewNotFound)
}

func TestDeleteProfessorCascades(t *testing.T) {
	db := setupTestDB(t)
	adminSvc := NewAdminService(db)
	voteSvc := NewVoteService(db)

	user := createUser(t, db, "student", models.RoleStudent)
	professor := createProfessor(t, db, "Dr. Jones", "History", "State U")
	first := createReview(t, db, professor.ID, &user.ID, "HIST 200", 2, "hard")
	createReview(t, db, professor.ID, nil, "HIST 201", 4, "heavy workload")

	_, err := voteSvc.CastVote(user.ID, first.ID, models.VoteLike)
	require.NoError(t, err)

	require.NoError(t, adminSvc.DeleteProfessor(professor.ID))

	var professors, reviews, votes int64
	db.Model(&models.Professor{}).Where("id = ?", professor.ID).Count(&professors)
	db.Model(&models.Review{}).Where("professor_id = ?", professor.ID).Count(&reviews)
	db.Model(&models.ReviewVote{}).Count(&votes)
	assert.Equal(t, int64(0), professors)
	assert.Equal(t, int64(0), reviews)
	assert.Equal(t, int64(0), votes)
}

func TestDeleteReply(t *testing.T) {
	db := setupTestDB(t)
	adminSvc := NewAdminService(db)
	reviewSvc := NewReviewService(db, nil)

	professor := createProfessor(t, db, "Dr. Curie", "Physics", "Sorbonne")
	review := createReview(t, db, professor.ID, nil, "PHYS 150", 3, "labs")
	reply, err := reviewSvc.AddReply(review.ID, CreateReplyRequest{Comment: "same"}, nil)
	require.NoError(t, err)

	require.NoError(t, adminSvc.DeleteReply(reply.ID))
	assert.ErrorIs(t, adminSvc.DeleteReply(reply.ID), ErrReplyNotFound)
}

func TestListAllReviewsResolvesNames(t *testing.T) {
	db := setupTestDB(t)
	adminSvc := NewAdminService(db)

	user := createUser(t, db, "student", models.RoleStudent)
	professor := createProfessor(t, db, "Dr. Hopper", "Computer Science", "Yale")
	createReview(t, db, professor.ID, &user.ID, "CS 101", 4, "practical")
	createReview(t, db, professor.ID, nil, "CS 201", 3, "fair")

	reviews, err := adminSvc.ListAllReviews()
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	names := map[string]bool{}
	for _, review := range reviews {
		assert.Equal(t, "Dr. Hopper", review.ProfessorName)
		names[review.AuthorName] = true
	}
	assert.True(t, names["student"])
	assert.True(t, names["Anonymous"])
}
