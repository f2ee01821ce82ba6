// Package predictor provides a client for the external win-probability classifier service.
package predictor

import "errors"

var (
	// ErrServiceUnavailable indicates the classifier service is unreachable
	ErrServiceUnavailable = errors.New("classifier service unavailable")

	// ErrInvalidResponse indicates the classifier response is invalid
	ErrInvalidResponse = errors.New("invalid response from classifier service")
)
