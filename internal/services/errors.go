package services

import "errors"

// Dashboard service errors
var (
	// View errors
	ErrViewNotFound = errors.New("view not found")

	// Snapshot errors
	ErrSnapshotUnavailable = errors.New("snapshot unavailable")

	// Report errors
	ErrReportWriteFailed = errors.New("report write failed")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
