package services

import (
	"testing"
	"time"

	"github.com/campusrate/campusrate-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 0.0, AverageRating([]models.Review{}))

	assert.Equal(t, 4.0, AverageRating([]models.Review{
		{Rating: 5}, {Rating: 3},
	}))

	// 13/3 = 4.333... rounds to one decimal
	assert.Equal(t, 4.3, AverageRating([]models.Review{
		{Rating: 5}, {Rating: 4}, {Rating: 4},
	}))
}

func TestAddReviewAnonymous(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db, nil)

	professor := createProfessor(t, db, "Dr. Turing", "Computer Science", "Cambridge")

	review, err := svc.AddReview(professor.ID, CreateReviewRequest{
		CourseCode: "CS 201",
		Rating:     4,
		Comment:    "ok",
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, review.UserID)

	listed, err := svc.ListReviews(professor.ID, "", nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Anonymous", listed[0].AuthorName)
}

func TestAddReviewRatingBounds(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db, nil)

	professor := createProfessor(t, db, "Dr. Curie", "Physics", "Sorbonne")

	for _, rating := range []int{0, -1, 6, 42} {
		_, err := svc.AddReview(professor.ID, CreateReviewRequest{
			CourseCode: "PHYS 150",
			Rating:     rating,
		}, nil)
		assert.ErrorIs(t, err, ErrInvalidRating)
	}

	_, err := svc.AddReview(professor.ID, CreateReviewRequest{
		CourseCode: "PHYS 150",
		Rating:     1,
	}, nil)
	assert.NoError(t, err)
}

func TestAddReviewProfessorNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db, nil)

	_, err := svc.AddReview(9999, CreateReviewRequest{CourseCode: "CS 101", Rating: 4}, nil)
	assert.ErrorIs(t, err, ErrProfessorNotFound)
}

func TestAddReviewRefreshesCourseCache(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db, nil)

	professor := createProfessor(t, db, "Dr. Hopper", "Computer Science", "Yale")

	_, err := svc.AddReview(professor.ID, CreateReviewRequest{CourseCode: "CS 101", Rating: 5}, nil)
	require.NoError(t, err)
	_, err = svc.AddReview(professor.ID, CreateReviewRequest{CourseCode: "CS 101", Rating: 3}, nil)
	require.NoError(t, err)

	// The derived course row is created once, idempotently
	var count int64
	db.Model(&models.Course{}).Where("code = ?", "CS 101").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListReviewsCourseFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db, nil)

	professor := createProfessor(t, db, "Dr. Lovelace", "Mathematics", "University of London")
	createReview(t, db, professor.ID, nil, "MATH 201", 5, "proofs")
	createReview(t, db, professor.ID, nil, "MATH 301", 3, "dense")

	all, err := svc.ListReviews(professor.ID, "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Exact course_code match only
	filtered, err := svc.ListReviews(professor.ID, "MATH 201", nil)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "MATH 201", filtered[0].CourseCode)

	none, err := svc.ListReviews(professor.ID, "math 201", nil)
	require.NoError(t, err)
	assert.Len(t, none, 0)
}

func TestListReviewsAnnotations(t *testing.T) {
	db := setupTestDB(t)
	reviewSvc := NewReviewService(db, nil)
	voteSvc := NewVoteService(db)

	author := createUser(t, db, "student_a", models.RoleStudent)
	viewer := createUser(t, db, "student_b", models.RoleStudent)
	professor := createProfessor(t, db, "Dr. Feynman", "Physics", "Caltech")
	review := createReview(t, db, professor.ID, &author.ID, "PHYS 150", 5, "makes it simple")

	_, err := voteSvc.CastVote(viewer.ID, review.ID, models.VoteLike)
	require.NoError(t, err)

	listed, err := reviewSvc.ListReviews(professor.ID, "", &viewer.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "student_a", listed[0].AuthorName)
	assert.Equal(t, int64(1), listed[0].Likes)
	assert.Equal(t, int64(0), listed[0].Dislikes)
	assert.Equal(t, models.VoteLike, listed[0].UserVote)

	// An anonymous viewer sees the counts but no vote state
	anon, err := reviewSvc.ListReviews(professor.ID, "", nil)
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.Equal(t, models.VoteNone, anon[0].UserVote)
}

func TestRepliesOrderedOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db, nil)

	professor := createProfessor(t, db, "Dr. Jones", "History", "State U")
	review := createReview(t, db, professor.ID, nil, "HIST 200", 2, "unclear expectations")

	base := time.Now().Add(-1 * time.Hour)
	for i, comment := range []string{"first", "second", "third"} {
		reply := models.ReviewReply{
			ReviewID:  review.ID,
			Comment:   comment,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&reply).Error)
	}

	listed, err := svc.ListReviews(professor.ID, "", nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Replies, 3)
	assert.Equal(t, "first", listed[0].Replies[0].Comment)
	assert.Equal(t, "second", listed[0].Replies[1].Comment)
	assert.Equal(t, "third", listed[0].Replies[2].Comment)
	assert.Equal(t, "Anonymous", listed[0].Replies[0].AuthorName)
}

func TestAddReply(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db, nil)

	user := createUser(t, db, "replier", models.RoleStudent)
	professor := createProfessor(t, db, "Dr. Turing", "Computer Science", "Cambridge")
	review := createReview(t, db, professor.ID, nil, "CS 101", 4, "good")

	reply, err := svc.AddReply(review.ID, CreateReplyRequest{Comment: "agreed"}, &user.ID)
	require.NoError(t, err)
	assert.Equal(t, "agreed", reply.Comment)
	require.NotNil(t, reply.UserID)
	assert.Equal(t, user.ID, *reply.UserID)

	// Whitespace-only comments are rejected after trimming
	_, err = svc.AddReply(review.ID, CreateReplyRequest{Comment: "   \t  "}, nil)
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = svc.AddReply(9999, CreateReplyRequest{Comment: "hello"}, nil)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
