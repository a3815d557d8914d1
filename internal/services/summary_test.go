package services

import (
	"testing"

	"github.com/campusrate/campusrate-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmptyInput(t *testing.T) {
	svc := NewSummaryService()
	assert.Nil(t, svc.Summarize(nil))
	assert.Nil(t, svc.Summarize([]models.Review{}))
}

func TestSummarizeNoCriticism(t *testing.T) {
	svc := NewSummaryService()

	// Only high ratings: nothing to criticize
	summary := svc.Summarize([]models.Review{
		{Rating: 5, Comment: "great"},
		{Rating: 4, Comment: "good"},
	})
	require.NotNil(t, summary)
	assert.Equal(t, noCriticismMessage, *summary)

	// A low rating without a comment also yields no criticism
	summary = svc.Summarize([]models.Review{
		{Rating: 2, Comment: "   "},
		{Rating: 5, Comment: "great"},
	})
	require.NotNil(t, summary)
	assert.Equal(t, noCriticismMessage, *summary)
}

func TestSummarizeNoThemes(t *testing.T) {
	svc := NewSummaryService()

	// Every token is a stopword or too short after stripping
	summary := svc.Summarize([]models.Review{
		{Rating: 1, Comment: "the and was, so. it!"},
	})
	require.NotNil(t, summary)
	assert.Equal(t, noThemesMessage, *summary)
}

func TestSummarizeTopKeywords(t *testing.T) {
	svc := NewSummaryService()

	reviews := []models.Review{
		{Rating: 2, Comment: "Boring lectures, boring slides."},
		{Rating: 3, Comment: "Lectures were boring and grading harsh."},
		{Rating: 1, Comment: "Harsh grading, confusing homework."},
		{Rating: 5, Comment: "Wonderful person."}, // high rating, ignored
	}

	summary := svc.Summarize(reviews)
	require.NotNil(t, summary)
	// boring x3, then the x2 ties in first-seen order, then the first single
	assert.Equal(t, "Students frequently mention: boring, lectures, grading, harsh, slides.", *summary)
}

func TestSummarizeTieBreakStable(t *testing.T) {
	svc := NewSummaryService()

	// Six distinct tokens, all frequency 1: the first five encountered win
	summary := svc.Summarize([]models.Review{
		{Rating: 2, Comment: "alpha bravo charlie delta echoes foxtrot"},
	})
	require.NotNil(t, summary)
	assert.Equal(t, "Students frequently mention: alpha, bravo, charlie, delta, echoes.", *summary)
}

func TestSummarizeStripsPunctuationAndCase(t *testing.T) {
	svc := NewSummaryService()

	summary := svc.Summarize([]models.Review{
		{Rating: 2, Comment: "Unfair! unfair. UNFAIR?"},
	})
	require.NotNil(t, summary)
	assert.Equal(t, "Students frequently mention: unfair.", *summary)
}
