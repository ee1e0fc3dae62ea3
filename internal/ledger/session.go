// internal/ledger/session.go
package ledger

import (
	"github.com/resona/resona-api/internal/models"
)

// Session is the caller identity passed to every ledger call.
type Session struct {
	Principal string
	AppRole   models.AppRole
	Token     string
}

func (s Session) IsAnonymous() bool {
	return s.Token == ""
}

func (s Session) IsAdmin() bool {
	return s.AppRole == models.AppRoleAdmin
}

// ConnectionState tracks whether the ledger can currently be reached.
type ConnectionState int32

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateUnavailable
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateUnavailable:
		return "unavailable"
	}
	return "unknown"
}

func (s ConnectionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
