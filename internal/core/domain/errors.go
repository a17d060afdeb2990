package domain

import "errors"

// Sentinel errors shared across services and repositories. The HTTP layer
// maps each one to a status code in a single place.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")

	ErrBugNotFound          = errors.New("bug not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrQualityNotFound      = errors.New("quality metric not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrAttachmentNotFound   = errors.New("attachment not found")
	ErrReportNotFound       = errors.New("report not found")

	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)
