package session

// reduce is the pure transition function. It computes a fresh snapshot
// and performs no I/O; the cookie-jar side effects live in the store's
// dispatch path, keyed off the event kind.
func reduce(state State, ev Event) State {
	switch ev.Kind {
	case EventAuthStarted:
		state.Status = StatusAuthenticating
		state.Loading = true
		return state

	case EventSessionLoaded, EventLoginSucceeded, EventRegisterSucceeded:
		state.Status = StatusAuthenticated
		state.IsAuthenticated = true
		state.Loading = false
		state.User = ev.User
		if ev.User != nil {
			state.AvatarURL = ev.User.AvatarURL
		}
		state.Error = ""
		return state

	case EventSessionFailed, EventLoginFailed, EventRegisterFailed:
		state.Status = StatusUnauthenticated
		state.IsAuthenticated = false
		state.Loading = false
		state.User = nil
		state.AvatarURL = ""
		// An absent token is not an error; only record what the
		// server (or validation) actually said.
		if ev.Message != "" {
			state.Error = ev.Message
		}
		return state

	case EventLoggedOut:
		state.Status = StatusUnauthenticated
		state.IsAuthenticated = false
		state.Loading = false
		state.User = nil
		state.AvatarURL = ""
		return state

	case EventUserUpdated:
		state.User = ev.User
		if ev.User != nil {
			state.AvatarURL = ev.User.AvatarURL
		}
		state.Error = ""
		return state

	case EventUserFetched:
		state.ViewedUser = ev.User
		state.Error = ""
		return state

	case EventAvatarUploaded:
		state.AvatarURL = ev.AvatarURL
		state.Error = ""
		return state

	case EventUserUpdateFailed, EventUserFetchFailed, EventAvatarUploadFailed:
		state.Error = ev.Message
		return state

	case EventErrorCleared:
		state.Error = ""
		return state

	default:
		return state
	}
}
