package session

import "github.com/revbook/revbook-client/internal/entities"

// Status is the authentication lifecycle state.
type Status int

const (
	// StatusUnknown means no session load has been attempted yet.
	StatusUnknown Status = iota
	// StatusAuthenticating means a login, register or session load is in flight.
	StatusAuthenticating
	// StatusUnauthenticated means there is no valid session.
	StatusUnauthenticated
	// StatusAuthenticated means a profile was confirmed by the server.
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticating:
		return "authenticating"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is the session snapshot handed to subscribers. Every
// transition replaces the whole value; profile pointers are never
// mutated in place.
type State struct {
	Status          Status
	IsAuthenticated bool
	Loading         bool
	User            *entities.UserProfile
	AvatarURL       string

	// ViewedUser is a profile fetched by id, distinct from the
	// signed-in user.
	ViewedUser *entities.UserProfile

	// Error is the last recorded failure message, empty when none.
	Error string
}

func initialState() State {
	return State{
		Status:  StatusUnknown,
		Loading: true,
	}
}
