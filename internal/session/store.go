package session

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/revbook/revbook-client/internal/api"
	"github.com/revbook/revbook-client/internal/entities"
)

// Validation messages mirror the server's public error strings so the
// user sees the same text whether the check runs locally or remotely.
const (
	msgEmailRequired     = "Email address is required"
	msgPasswordRequired  = "Password is required"
	msgPasswordTooShort  = "Password must be at least 8 characters long"
	msgFirstNameRequired = "First name is required"
	msgLastNameRequired  = "Last name is required"
)

const minPasswordLength = 8

// API is the server surface the session store depends on.
type API interface {
	Signup(ctx context.Context, params api.SignupParams) (*api.AuthResult, error)
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResult, error)
	UserInfo(ctx context.Context, token string) (*entities.UserProfile, error)
	UserByID(ctx context.Context, id uint) (*entities.UserProfile, error)
	UpdateUser(ctx context.Context, token string, id uint, fields api.UserUpdate) (*entities.UserProfile, error)
}

// Jar is the durable cookie store the session store persists its
// remember token into.
type Jar interface {
	Get(name string) (string, bool, error)
	Set(name, value string) error
	Delete(name string) error
}

// Uploader hands an image to the external avatar service and returns a
// secure URL. The service is an opaque collaborator.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// action identifies an action family for the stale-response guard.
type action int

const (
	actionLoadSession action = iota
	actionLogin
	actionRegister
	actionUpdateUser
	actionFetchUser
	actionUploadAvatar
)

// Store is the authentication state container. One instance is
// constructed at process start and shared by reference.
type Store struct {
	client   API
	jar      Jar
	uploader Uploader
	log      zerolog.Logger

	mu      sync.Mutex
	state   State
	seq     map[action]uint64
	subs    map[int]func(State)
	nextSub int
}

// New creates a session store. The uploader may be nil if avatar
// uploads are not configured.
func New(client API, jar Jar, uploader Uploader, log zerolog.Logger) *Store {
	return &Store{
		client:   client,
		jar:      jar,
		uploader: uploader,
		log:      log.With().Str("store", "session").Logger(),
		state:    initialState(),
		seq:      make(map[action]uint64),
		subs:     make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a callback invoked with every new snapshot.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// begin issues a new request id for the action family. A settled
// response is applied only if its id is still the latest issued, so a
// double submit cannot be overwritten by the slower, stale response.
func (s *Store) begin(a action) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[a]++
	return s.seq[a]
}

// dispatch applies an event unconditionally.
func (s *Store) dispatch(ev Event) {
	s.mu.Lock()
	next := s.apply(ev)
	subs := s.snapshotSubs()
	s.mu.Unlock()
	notify(subs, next)
}

// settle applies a terminal event only if the request id is still the
// latest issued for its action family.
func (s *Store) settle(a action, id uint64, ev Event) {
	s.mu.Lock()
	if id != s.seq[a] {
		s.mu.Unlock()
		s.log.Debug().Uint64("request_id", id).Uint64("latest", s.seq[a]).
			Msg("discarding stale response")
		return
	}
	next := s.apply(ev)
	subs := s.snapshotSubs()
	s.mu.Unlock()
	notify(subs, next)
}

// apply runs the reducer and the paired persistence effect under the
// store lock, so the cookie write/remove is atomic with the state
// transition. Callers hold s.mu.
func (s *Store) apply(ev Event) State {
	s.state = reduce(s.state, ev)

	switch ev.Kind {
	case EventLoginSucceeded, EventRegisterSucceeded, EventSessionLoaded:
		if err := s.jar.Set(entities.RememberTokenCookie, ev.Token); err != nil {
			s.log.Error().Err(err).Msg("failed to persist remember token")
		}
	case EventSessionFailed, EventLoginFailed, EventRegisterFailed, EventLoggedOut:
		if err := s.jar.Delete(entities.RememberTokenCookie); err != nil {
			s.log.Error().Err(err).Msg("failed to erase remember token")
		}
	}

	return s.state
}

func (s *Store) snapshotSubs() []func(State) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(State), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	return fns
}

func notify(subs []func(State), state State) {
	for _, fn := range subs {
		fn(state)
	}
}

// LoadSession restores the session from the persisted remember token.
// With no token present it settles locally with no network call.
func (s *Store) LoadSession(ctx context.Context) {
	token, ok, err := s.jar.Get(entities.RememberTokenCookie)
	if err != nil {
		s.log.Warn().Err(err).Msg("cookie jar read failed")
	}
	if err != nil || !ok {
		s.dispatch(Event{Kind: EventSessionFailed})
		return
	}

	id := s.begin(actionLoadSession)
	s.dispatch(Event{Kind: EventAuthStarted})

	profile, err := s.client.UserInfo(ctx, token)
	if err != nil {
		s.settle(actionLoadSession, id, Event{Kind: EventSessionFailed, Message: api.Message(err)})
		return
	}
	s.settle(actionLoadSession, id, Event{Kind: EventSessionLoaded, User: profile, Token: token})
}

// Register creates an account and signs in.
func (s *Store) Register(ctx context.Context, params api.SignupParams) {
	if err := validateSignup(params); err != nil {
		s.dispatch(Event{Kind: EventRegisterFailed, Message: api.Message(err)})
		return
	}

	id := s.begin(actionRegister)
	s.dispatch(Event{Kind: EventAuthStarted})

	result, err := s.client.Signup(ctx, params)
	if err != nil {
		s.settle(actionRegister, id, Event{Kind: EventRegisterFailed, Message: api.Message(err)})
		return
	}
	profile := result.UserProfile
	s.settle(actionRegister, id, Event{Kind: EventRegisterSucceeded, User: &profile, Token: result.Token})
	s.hydrate(ctx, actionRegister, id, result.Token)
}

// Login authenticates with an email and password.
func (s *Store) Login(ctx context.Context, email, password string) {
	if err := validateCredentials(email, password); err != nil {
		s.dispatch(Event{Kind: EventLoginFailed, Message: api.Message(err)})
		return
	}

	id := s.begin(actionLogin)
	s.dispatch(Event{Kind: EventAuthStarted})

	result, err := s.client.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		s.settle(actionLogin, id, Event{Kind: EventLoginFailed, Message: api.Message(err)})
		return
	}
	profile := result.UserProfile
	s.settle(actionLogin, id, Event{Kind: EventLoginSucceeded, User: &profile, Token: result.Token})
	s.hydrate(ctx, actionLogin, id, result.Token)
}

// hydrate refreshes the full profile after an auth response, which
// omits some fields. A hydration failure is not session-invalidating.
func (s *Store) hydrate(ctx context.Context, a action, id uint64, token string) {
	profile, err := s.client.UserInfo(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("profile hydration failed")
		return
	}
	s.settle(a, id, Event{Kind: EventSessionLoaded, User: profile, Token: token})
}

// Logout erases the session locally. The token is opaque and
// stateless, so the server is never called. In-flight auth requests
// are invalidated so a response that settles later cannot resurrect
// the session.
func (s *Store) Logout() {
	s.mu.Lock()
	s.seq[actionLoadSession]++
	s.seq[actionLogin]++
	s.seq[actionRegister]++
	next := s.apply(Event{Kind: EventLoggedOut})
	subs := s.snapshotSubs()
	s.mu.Unlock()
	notify(subs, next)
}

// UpdateUser updates profile fields for the given user and refreshes
// the session profile on success.
func (s *Store) UpdateUser(ctx context.Context, fields api.UserUpdate, userID uint) {
	token, _, err := s.jar.Get(entities.RememberTokenCookie)
	if err != nil {
		s.log.Warn().Err(err).Msg("cookie jar read failed")
	}

	id := s.begin(actionUpdateUser)

	profile, err := s.client.UpdateUser(ctx, token, userID, fields)
	if err != nil {
		s.settle(actionUpdateUser, id, Event{Kind: EventUserUpdateFailed, Message: api.Message(err)})
		return
	}
	s.settle(actionUpdateUser, id, Event{Kind: EventUserUpdated, User: profile})

	refreshed, err := s.client.UserInfo(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("profile refresh failed")
		return
	}
	s.settle(actionUpdateUser, id, Event{Kind: EventUserUpdated, User: refreshed})
}

// FetchUserByID populates ViewedUser independently of the signed-in
// user. On failure the previous ViewedUser value is kept.
func (s *Store) FetchUserByID(ctx context.Context, userID uint) {
	id := s.begin(actionFetchUser)

	profile, err := s.client.UserByID(ctx, userID)
	if err != nil {
		s.settle(actionFetchUser, id, Event{Kind: EventUserFetchFailed, Message: api.Message(err)})
		return
	}
	s.settle(actionFetchUser, id, Event{Kind: EventUserFetched, User: profile})
}

// UploadAvatar hands the image to the external upload service and
// stores the returned secure URL. Authentication state is never
// touched by this action.
func (s *Store) UploadAvatar(ctx context.Context, filename string, r io.Reader) {
	if s.uploader == nil {
		s.dispatch(Event{Kind: EventAvatarUploadFailed, Message: "avatar uploads are not configured"})
		return
	}

	id := s.begin(actionUploadAvatar)

	url, err := s.uploader.Upload(ctx, filename, r)
	if err != nil {
		s.settle(actionUploadAvatar, id, Event{Kind: EventAvatarUploadFailed, Message: api.Message(err)})
		return
	}
	s.settle(actionUploadAvatar, id, Event{Kind: EventAvatarUploaded, AvatarURL: url})
}

// ClearError dismisses the recorded error. No other field changes.
func (s *Store) ClearError() {
	s.dispatch(Event{Kind: EventErrorCleared})
}

func validateCredentials(email, password string) *api.Error {
	if email == "" {
		return api.ValidationErr(msgEmailRequired)
	}
	if password == "" {
		return api.ValidationErr(msgPasswordRequired)
	}
	if len(password) < minPasswordLength {
		return api.ValidationErr(msgPasswordTooShort)
	}
	return nil
}

func validateSignup(params api.SignupParams) *api.Error {
	if params.FirstName == "" {
		return api.ValidationErr(msgFirstNameRequired)
	}
	if params.LastName == "" {
		return api.ValidationErr(msgLastNameRequired)
	}
	return validateCredentials(params.Email, params.Password)
}
