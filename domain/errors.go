package domain

import "errors"

var (
	ErrIncompleteProfile  = errors.New("incomplete profile")
	ErrInvalidRequestKind = errors.New("invalid request type")
	ErrMissingPayload     = errors.New("missing required parameters")
	ErrGenerationFailed   = errors.New("failed to process request")
	ErrInvalidShareURL    = errors.New("share link is missing required parameters")
)
