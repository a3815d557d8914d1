package utils

import (
	"regexp"
	"strings"
)

func IsValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

func IsValidPassword(password string) bool {
	return len(password) >= 8
}

func IsValidUsername(username string) bool {
	username = strings.TrimSpace(username)
	return len(username) >= 3 && len(username) <= 50
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// NormalizeCourseCode strips every non-alphanumeric character and lowercases,
// so "CS-101", "cs 101" and "CS101" compare equal. Stored codes keep their
// original form for display.
func NormalizeCourseCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
