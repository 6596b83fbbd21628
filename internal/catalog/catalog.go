// Package catalog holds the book collection state container: the
// fetched page of books, the currently selected book and the last
// recorded error. Like the session store it couples an immutable
// snapshot with a pure reducer driven by asynchronous actions.
package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/revbook/revbook-client/internal/api"
	"github.com/revbook/revbook-client/internal/entities"
)

// LoadState tracks whether the collection has been fetched. Consumers
// that rely on the nil-slice contract keep working: Books stays nil
// until the first successful fetch.
type LoadState int

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
)

func (l LoadState) String() string {
	switch l {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "not_loaded"
	}
}

// State is the catalog snapshot. Books is nil until the first
// successful fetch; an empty, non-nil slice means the server returned
// no results.
type State struct {
	Books        []entities.Book
	BooksLoad    LoadState
	SelectedBook *entities.Book
	Error        string
}

// EventKind identifies a catalog reducer event.
type EventKind int

const (
	// EventBooksLoading marks an in-flight catalog fetch. Not a
	// terminal event.
	EventBooksLoading EventKind = iota
	EventBooksFetched
	EventBookCreated
	EventBookFetched
	EventBookUpdated
	EventBookCleared
	EventBooksCleared
	EventFailed
	EventErrorCleared
)

// Event is the typed message dispatched after an action settles.
type Event struct {
	Kind    EventKind
	Books   []entities.Book
	Book    *entities.Book
	Message string
}

// API is the server surface the catalog store depends on.
type API interface {
	Books(ctx context.Context, page, limit int) ([]entities.Book, error)
	CreateBook(ctx context.Context, token string, params api.BookParams) (*entities.Book, error)
	Book(ctx context.Context, id uint) (*entities.Book, error)
	UpdateBook(ctx context.Context, token string, id uint, params api.BookParams) (*entities.Book, error)
}

// TokenSource supplies the remember token for authenticated book
// mutations. The session store's cookie jar satisfies it.
type TokenSource interface {
	Get(name string) (string, bool, error)
}

// action identifies an action family for the stale-response guard.
type action int

const (
	actionFetchBooks action = iota
	actionCreateBook
	actionFetchBook
	actionUpdateBook
)

// Store is the catalog state container.
type Store struct {
	client API
	tokens TokenSource
	log    zerolog.Logger

	mu      sync.Mutex
	state   State
	seq     map[action]uint64
	subs    map[int]func(State)
	nextSub int
}

// New creates a catalog store.
func New(client API, tokens TokenSource, log zerolog.Logger) *Store {
	return &Store{
		client: client,
		tokens: tokens,
		log:    log.With().Str("store", "catalog").Logger(),
		seq:    make(map[action]uint64),
		subs:   make(map[int]func(State)),
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

func (s *Store) begin(a action) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[a]++
	return s.seq[a]
}

func (s *Store) dispatch(ev Event) {
	s.mu.Lock()
	s.state = reduce(s.state, ev)
	next := s.state
	subs := s.snapshotSubs()
	s.mu.Unlock()
	for _, fn := range subs {
		fn(next)
	}
}

func (s *Store) settle(a action, id uint64, ev Event) {
	s.mu.Lock()
	if id != s.seq[a] {
		s.mu.Unlock()
		s.log.Debug().Uint64("request_id", id).Msg("discarding stale response")
		return
	}
	s.state = reduce(s.state, ev)
	next := s.state
	subs := s.snapshotSubs()
	s.mu.Unlock()
	for _, fn := range subs {
		fn(next)
	}
}

func (s *Store) snapshotSubs() []func(State) {
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return fns
}

func (s *Store) token() string {
	if s.tokens == nil {
		return ""
	}
	token, _, err := s.tokens.Get(entities.RememberTokenCookie)
	if err != nil {
		s.log.Warn().Err(err).Msg("cookie jar read failed")
	}
	return token
}

// FetchBooks replaces the collection wholesale with the server's page
// of results. On failure the collection is left untouched.
func (s *Store) FetchBooks(ctx context.Context, page, limit int) {
	id := s.begin(actionFetchBooks)
	s.dispatch(Event{Kind: EventBooksLoading})

	books, err := s.client.Books(ctx, page, limit)
	if err != nil {
		s.settle(actionFetchBooks, id, Event{Kind: EventFailed, Message: api.Message(err)})
		return
	}
	s.settle(actionFetchBooks, id, Event{Kind: EventBooksFetched, Books: books})
}

// CreateBook posts a new book and, on success, prepends it to the
// front of the collection. Most-recent-first ordering is a product
// decision, not an artifact.
func (s *Store) CreateBook(ctx context.Context, params api.BookParams) {
	if err := validateBook(params); err != nil {
		s.dispatch(Event{Kind: EventFailed, Message: api.Message(err)})
		return
	}

	id := s.begin(actionCreateBook)

	book, err := s.client.CreateBook(ctx, s.token(), params)
	if err != nil {
		s.settle(actionCreateBook, id, Event{Kind: EventFailed, Message: api.Message(err)})
		return
	}
	s.settle(actionCreateBook, id, Event{Kind: EventBookCreated, Book: book})
}

// FetchBook loads a single book, with reviews, into SelectedBook.
func (s *Store) FetchBook(ctx context.Context, bookID uint) {
	id := s.begin(actionFetchBook)

	book, err := s.client.Book(ctx, bookID)
	if err != nil {
		s.settle(actionFetchBook, id, Event{Kind: EventFailed, Message: api.Message(err)})
		return
	}
	s.settle(actionFetchBook, id, Event{Kind: EventBookFetched, Book: book})
}

// UpdateBook replaces the matching element in the collection by id,
// preserving the order of all other elements.
func (s *Store) UpdateBook(ctx context.Context, params api.BookParams, bookID uint) {
	id := s.begin(actionUpdateBook)

	book, err := s.client.UpdateBook(ctx, s.token(), bookID, params)
	if err != nil {
		s.settle(actionUpdateBook, id, Event{Kind: EventFailed, Message: api.Message(err)})
		return
	}
	s.settle(actionUpdateBook, id, Event{Kind: EventBookUpdated, Book: book})
}

// ClearBook resets the selected book.
func (s *Store) ClearBook() {
	s.dispatch(Event{Kind: EventBookCleared})
}

// ClearBooks resets the whole catalog state.
func (s *Store) ClearBooks() {
	s.dispatch(Event{Kind: EventBooksCleared})
}

// ClearError dismisses the recorded error. No other field changes.
func (s *Store) ClearError() {
	s.dispatch(Event{Kind: EventErrorCleared})
}

func validateBook(params api.BookParams) *api.Error {
	switch {
	case params.Title == "":
		return api.ValidationErr("Book title is required")
	case params.Author == "":
		return api.ValidationErr("Book author is required")
	case params.Category == "":
		return api.ValidationErr("Book category is required")
	case params.Summary == "":
		return api.ValidationErr("Book summary is required")
	default:
		return nil
	}
}
