package domain

import "errors"

var (
	// ErrUserNotFound is returned when no account exists for an email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned on an attempt to register an email twice.
	ErrUserExists = errors.New("user already exists")
	// ErrSubjectNotFound is returned when a subject name or id does not resolve.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrSubjectExists is returned on a duplicate subject name.
	ErrSubjectExists = errors.New("subject already exists")
	// ErrScoreNotFound is returned when a (user, subject) pair has no score row.
	ErrScoreNotFound = errors.New("score row not found")
	// ErrScoreExists is returned when a (user, subject) pair already has a row.
	ErrScoreExists = errors.New("score row already exists")
	// ErrInvalidLevel is returned for a difficulty outside easy/medium/hard.
	ErrInvalidLevel = errors.New("invalid question level")
	// ErrInvalidInput is returned for missing or malformed request parameters.
	ErrInvalidInput = errors.New("invalid input")
)
