package studio

import "errors"

var (
	// Validation errors
	ErrInvalidEventType   = errors.New("invalid event type")
	ErrInvalidBaselineSHA = errors.New("invalid baseline sha")
	ErrMissingStep        = errors.New("missing step in data event")
	ErrInvalidScopes      = errors.New("invalid scopes")
	ErrVersionAndStage    = errors.New("version and stage are mutually exclusive")

	// Configuration errors
	ErrMissingConfig = errors.New("no studio config")

	// API errors
	ErrModelNotFound         = errors.New("model not found")
	ErrAuthenticationExpired = errors.New("authentication expired")
)
