package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCourseNormalization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSearchService(db, nil)

	professor := createProfessor(t, db, "Dr. Turing", "Computer Science", "Cambridge")
	createReview(t, db, professor.ID, nil, "CS-101", 5, "excellent")

	// "CS-101", "cs 101" and "CS101" are all equivalent for matching
	for _, query := range []string{"cs101", "CS 101", "cs-101"} {
		result, err := svc.Search(query)
		require.NoError(t, err)
		require.Len(t, result.Courses, 1, "query %q", query)
		// Displayed code keeps its stored form
		assert.Equal(t, "CS-101", result.Courses[0].CourseCode)
		require.Len(t, result.Courses[0].Professors, 1)
		assert.Equal(t, professor.ID, result.Courses[0].Professors[0].ID)
	}
}

func TestSearchProfessorsFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSearchService(db, nil)

	turing := createProfessor(t, db, "Dr. Alan Turing", "Computer Science", "Cambridge")
	curie := createProfessor(t, db, "Dr. Marie Curie", "Physics", "Sorbonne")
	createReview(t, db, turing.ID, nil, "CS 101", 5, "invented computers basically")

	// Name match, case-insensitive substring
	result, err := svc.Search("turing")
	require.NoError(t, err)
	require.Len(t, result.Professors, 1)
	assert.Equal(t, turing.ID, result.Professors[0].ID)

	// Department match
	result, err = svc.Search("physics")
	require.NoError(t, err)
	require.Len(t, result.Professors, 1)
	assert.Equal(t, curie.ID, result.Professors[0].ID)

	// University match
	result, err = svc.Search("sorbonne")
	require.NoError(t, err)
	require.Len(t, result.Professors, 1)

	// Review comment match, deduplicated against profile matches
	result, err = svc.Search("computer")
	require.NoError(t, err)
	require.Len(t, result.Professors, 1)
	assert.Equal(t, turing.ID, result.Professors[0].ID)
}

func TestSearchEmptyQuery(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSearchService(db, nil)

	_, err := svc.Search("   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestFindProfessorsForCourseTwoPhase(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSearchService(db, nil)

	turing := createProfessor(t, db, "Dr. Turing", "Computer Science", "Cambridge")
	hopper := createProfessor(t, db, "Dr. Hopper", "Computer Science", "Yale")
	createReview(t, db, turing.ID, nil, "CS 101", 5, "a")
	createReview(t, db, hopper.ID, nil, "CS 1011", 4, "b")

	// Exact normalized match wins: "cs-101" must not pick up "CS 1011"
	refs, err := svc.FindProfessorsForCourse("cs-101")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, turing.ID, refs[0].ID)

	// No exact hit falls back to raw substring matching
	refs, err = svc.FindProfessorsForCourse("CS 10")
	require.NoError(t, err)
	assert.Len(t, refs, 2)
}

func TestListCourseCodes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSearchService(db, nil)

	professor := createProfessor(t, db, "Dr. Lovelace", "Mathematics", "University of London")
	createReview(t, db, professor.ID, nil, "MATH 201", 5, "a")
	createReview(t, db, professor.ID, nil, "MATH 201", 4, "b")
	createReview(t, db, professor.ID, nil, "CS 101", 3, "c")

	codes, err := svc.ListCourseCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"CS 101", "MATH 201"}, codes)
}

func TestSearchGroupsCoursesAcrossProfessors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSearchService(db, nil)

	turing := createProfessor(t, db, "Dr. Turing", "Computer Science", "Cambridge")
	hopper := createProfessor(t, db, "Dr. Hopper", "Computer Science", "Yale")
	createReview(t, db, turing.ID, nil, "CS 101", 5, "a")
	createReview(t, db, hopper.ID, nil, "CS 101", 4, "b")
	createReview(t, db, hopper.ID, nil, "CS 101", 3, "c")

	result, err := svc.Search("cs101")
	require.NoError(t, err)
	require.Len(t, result.Courses, 1)
	// Distinct professors per stored code, one entry each
	assert.Len(t, result.Courses[0].Professors, 2)
}
