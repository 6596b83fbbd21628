package session

import "github.com/revbook/revbook-client/internal/entities"

// EventKind identifies a reducer event.
type EventKind int

const (
	// EventAuthStarted marks the start of a login, register or
	// session load. Not a terminal event.
	EventAuthStarted EventKind = iota
	// EventSessionLoaded carries a server-confirmed profile.
	EventSessionLoaded
	// EventSessionFailed means the persisted token was absent,
	// expired or could not be validated.
	EventSessionFailed
	EventLoginSucceeded
	EventLoginFailed
	EventRegisterSucceeded
	EventRegisterFailed
	EventLoggedOut
	EventUserUpdated
	EventUserUpdateFailed
	EventUserFetched
	EventUserFetchFailed
	EventAvatarUploaded
	EventAvatarUploadFailed
	EventErrorCleared
)

// Event is the typed message dispatched after an action settles.
type Event struct {
	Kind      EventKind
	User      *entities.UserProfile
	Token     string
	AvatarURL string
	Message   string
}
