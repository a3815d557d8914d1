package services

import (
	"fmt"
	"strings"

	"github.com/campusrate/campusrate-backend/internal/models"
)

const (
	lowRatingCeiling = 3
	summaryKeywords  = 5
	minTokenLength   = 3

	noCriticismMessage = "Students have no significant criticism of this professor."
	noThemesMessage    = "No common themes found in critical reviews."
)

var stopwords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true, "was": true,
	"are": true, "this": true, "that": true, "with": true, "his": true,
	"her": true, "had": true, "has": true, "have": true, "not": true,
	"you": true, "very": true, "too": true, "all": true, "she": true,
	"him": true, "they": true, "were": true, "been": true, "would": true,
	"could": true, "class": true, "professor": true, "prof": true,
}

const tokenPunctuation = ".,!?;:\"'()[]"

// SummaryService extracts the most frequent keywords from low-rated review
// comments.
type SummaryService struct{}

func NewSummaryService() *SummaryService {
	return &SummaryService{}
}

// Summarize returns nil when there are no reviews at all. With reviews but no
// low-rated commented ones it returns the fixed no-criticism message; with
// low-rated comments whose tokens all get filtered out, the fixed no-themes
// message; otherwise the top keywords joined into a fixed-format sentence.
// Frequency ties keep first-encountered order.
func (s *SummaryService) Summarize(reviews []models.Review) *string {
	if len(reviews) == 0 {
		return nil
	}

	var critical []string
	for _, review := range reviews {
		if review.Rating <= lowRatingCeiling && strings.TrimSpace(review.Comment) != "" {
			critical = append(critical, review.Comment)
		}
	}
	if len(critical) == 0 {
		msg := noCriticismMessage
		return &msg
	}

	counts := make(map[string]int)
	var order []string
	for _, comment := range critical {
		for _, token := range strings.Fields(comment) {
			token = strings.ToLower(strings.Trim(token, tokenPunctuation))
			if len(token) < minTokenLength || stopwords[token] {
				continue
			}
			if counts[token] == 0 {
				order = append(order, token)
			}
			counts[token]++
		}
	}
	if len(order) == 0 {
		msg := noThemesMessage
		return &msg
	}

	// Stable selection sort over first-encountered order keeps ties stable.
	top := make([]string, 0, summaryKeywords)
	picked := make(map[string]bool)
	for len(top) < summaryKeywords && len(top) < len(order) {
		best := ""
		for _, token := range order {
			if picked[token] {
				continue
			}
			if best == "" || counts[token] > counts[best] {
				best = token
			}
		}
		if best == "" {
			break
		}
		picked[best] = true
		top = append(top, best)
	}

	msg := fmt.Sprintf("Students frequently mention: %s.", strings.Join(top, ", "))
	return &msg
}
