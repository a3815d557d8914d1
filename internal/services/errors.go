package services

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// statuses; anything else is treated as an unexpected persistence failure.
var (
	// Validation
	ErrInvalidUsername = errors.New("username must be between 3 and 50 characters")
	ErrInvalidPassword = errors.New("password must be at least 8 characters")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidVoteType = errors.New("vote type must be like or dislike")
	ErrEmptyComment    = errors.New("comment cannot be empty")
	ErrEmptyQuery      = errors.New("search query cannot be empty")
	ErrEmptyCourseCode = errors.New("course code cannot be empty")
	ErrEmptyName       = errors.New("professor name cannot be empty")

	// Duplicates
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")

	// Not found
	ErrProfessorNotFound = errors.New("professor not found")
	ErrReviewNotFound    = errors.New("review not found")
	ErrReplyNotFound     = errors.New("reply not found")
	ErrUserNotFound      = errors.New("user not found")

	// Auth
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsValidation reports whether err is a caller mistake rather than a
// persistence failure.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidUsername),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrInvalidVoteType),
		errors.Is(err, ErrEmptyComment),
		errors.Is(err, ErrEmptyQuery),
		errors.Is(err, ErrEmptyCourseCode),
		errors.Is(err, ErrEmptyName):
		return true
	}
	return false
}

// IsNotFound reports whether err refers to a missing entity.
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrProfessorNotFound),
		errors.Is(err, ErrReviewNotFound),
		errors.Is(err, ErrReplyNotFound),
		errors.Is(err, ErrUserNotFound):
		return true
	}
	return false
}

// IsDuplicate reports whether err is a username/email collision.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken)
}
