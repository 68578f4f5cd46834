package qerrors

import "errors"

var (
	// Course errors
	CourseNotFoundError  = errors.New("course not found")
	CourseNotPublicError = errors.New("this course is private")
	ChapterNotFoundError = errors.New("chapter not found")
	NotCourseOwnerError  = errors.New("you do not own this course")

	// User errors
	UserNotFoundError        = errors.New("user not found")
	UserProfileNotFoundError = errors.New("user profile not found")
	UnauthorizedError        = errors.New("you must be authenticated to access this resource")

	// Review errors
	InvalidRatingError  = errors.New("rating must be an integer between 1 and 5")
	InvalidSortError    = errors.New("invalid sort option")
	ReviewNotFoundError = errors.New("review not found")

	// Certificate errors
	CertificateNotFoundError = errors.New("certificate not found")

	// Validation
	InvalidBody = errors.New("missing or malformed required field")

	// External dependencies
	DatabaseUnavailableError = errors.New("database not available")
	EmailSendError           = errors.New("an error occurred while sending email")
)
