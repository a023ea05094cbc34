package session

import "errors"

var (
	// ErrInvalidWeights: score weights do not sum to 1.0 within
	// tolerance. Never silently renormalized.
	ErrInvalidWeights = errors.New("invalid score weights")

	// ErrMissingThreshold: no source of any priority produced a usable
	// value for a required threshold type on some channel.
	ErrMissingThreshold = errors.New("no usable threshold source")

	// ErrDegenerateSymmetryInput: symmetry needs exactly one bilateral
	// pair, i.e. exactly two channels.
	ErrDegenerateSymmetryInput = errors.New("symmetry needs exactly two channels")

	ErrSessionNotFound = errors.New("session not found")
	ErrScoreNotFound   = errors.New("session score not found")
)
