package auth

// SessionState describes what is known about the current session.
type SessionState int

const (
	// SessionUnknown means the session has not been resolved yet.
	SessionUnknown SessionState = iota
	// SessionAbsent means there is no authenticated session.
	SessionAbsent
	// SessionPresent means an authenticated session exists.
	SessionPresent
)

func (s SessionState) String() string {
	switch s {
	case SessionAbsent:
		return "absent"
	case SessionPresent:
		return "present"
	default:
		return "unknown"
	}
}

// Session is the resolved authentication state for a request. UserID is
// set only when State is SessionPresent.
type Session struct {
	State  SessionState
	UserID string
	Email  string
}
