package domain

import "errors"

// Enum parse errors
var (
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidAssetStatus   = errors.New("invalid asset status")
	ErrInvalidRequestStatus = errors.New("invalid request status")
)
