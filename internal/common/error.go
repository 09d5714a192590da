// Package common defines shared sentinel errors used across userstore
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session token errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
