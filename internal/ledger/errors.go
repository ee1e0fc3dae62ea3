// internal/ledger/errors.go
package ledger

import (
	"errors"
)

// GenericFailureMessage is shown when the ledger rejects a call without saying why.
const GenericFailureMessage = "Request failed. Please try again."

var (
	ErrUnavailable = errors.New("ledger unavailable")
	ErrNotFound    = errors.New("not found")
)

// RemoteError is a rejection returned by the ledger.
type RemoteError struct {
	Method     string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return GenericFailureMessage
	}
	return e.Message
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
