// Package session holds the authentication state container.
//
// The store couples an immutable state snapshot with a pure reducer
// and a set of asynchronous actions. Each action issues at most one
// server request and, once it settles, dispatches exactly one terminal
// event into the reducer. A thin effect layer persists or erases the
// remember token in the cookie jar atomically with the state
// transition, so the persisted token and IsAuthenticated always agree
// after any transition.
//
// State machine:
//
//	Unknown -> {Authenticating, Unauthenticated, Authenticated}
//
// Construct one store at process start and hand it to consumers; there
// are no package-level globals.
//
//	store := session.New(client, jar, uploader, logger)
//	store.LoadSession(ctx)
//	if store.State().IsAuthenticated { ... }
package session
