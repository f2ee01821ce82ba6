package models

import "errors"

// Custom errors
var (
	ErrRaceNotFound     = errors.New("race not found")
	ErrNotFound         = errors.New("record not found")
	ErrInvalidID        = errors.New("invalid ID")
	ErrDuplicateKey     = errors.New("duplicate key violation")
	ErrMalformedHistory = errors.New("malformed historical race record")
)
