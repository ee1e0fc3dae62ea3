// internal/models/errors.go
package models

import "errors"

// ErrInvalidInput marks a request rejected before it reaches the ledger.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotConfigured marks an operation whose external provider has no credentials.
var ErrNotConfigured = errors.New("not configured")
