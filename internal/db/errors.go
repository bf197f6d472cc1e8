package db

import "errors"

// Domain-level database error sentinels.
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("an account with this email already exists")

	// Publisher request errors
	ErrRequestNotFound     = errors.New("publisher request not found")
	ErrPendingRequestLimit = errors.New("you have reached the maximum number of pending requests (5)")
	ErrRequestNotDeletable = errors.New("only pending or rejected requests can be deleted")

	// Password reset errors
	ErrResetTokenInvalid = errors.New("reset token is invalid or expired")
)
