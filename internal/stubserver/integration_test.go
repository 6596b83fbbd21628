package stubserver

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revbook/revbook-client/internal/api"
	"github.com/revbook/revbook-client/internal/catalog"
	"github.com/revbook/revbook-client/internal/cookiejar"
	"github.com/revbook/revbook-client/internal/crypto"
	"github.com/revbook/revbook-client/internal/session"
)

// setupIntegration runs the full client stack against the stub server:
// real API client, real sqlite cookie jar, real stores.
func setupIntegration(t *testing.T) (*session.Store, *catalog.Store, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := httptest.NewServer(New(zerolog.Nop()).Router())

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	jar, err := cookiejar.Open(cookiejar.Config{
		DatabasePath: filepath.Join(t.TempDir(), "cookies.db"),
		SealingKey:   key,
	})
	require.NoError(t, err)

	client := api.New(ts.URL)
	sessions := session.New(client, jar, nil, zerolog.Nop())
	books := catalog.New(client, jar, zerolog.Nop())

	cleanup := func() {
		jar.Close()
		ts.Close()
	}
	return sessions, books, cleanup
}

func TestFullSignupAndSessionRestore(t *testing.T) {
	sessions, _, cleanup := setupIntegration(t)
	defer cleanup()

	ctx := context.Background()

	sessions.Register(ctx, api.SignupParams{
		FirstName: "Dana",
		LastName:  "Reed",
		Email:     "dana@example.com",
		Password:  "hunter2hunter2",
	})

	state := sessions.State()
	require.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "dana@example.com", state.User.Email)
	assert.Empty(t, state.Error)

	// A fresh load must restore the same account from the cookie jar.
	sessions.Logout()
	sessions.Login(ctx, "dana@example.com", "hunter2hunter2")
	require.True(t, sessions.State().IsAuthenticated)

	sessions.LoadSession(ctx)
	state = sessions.State()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "dana@example.com", state.User.Email)
}

func TestFullLoginRejection(t *testing.T) {
	sessions, _, cleanup := setupIntegration(t)
	defer cleanup()

	ctx := context.Background()
	sessions.Register(ctx, api.SignupParams{
		FirstName: "Dana",
		LastName:  "Reed",
		Email:     "dana@example.com",
		Password:  "hunter2hunter2",
	})
	sessions.Logout()

	sessions.Login(ctx, "dana@example.com", "wrong-password")
	state := sessions.State()
	assert.False(t, state.IsAuthenticated)
	assert.Equal(t, msgInvalidCredentials, state.Error)

	// The failed login erased the token, so a reload stays signed out
	// without a network round trip succeeding.
	sessions.LoadSession(ctx)
	assert.False(t, sessions.State().IsAuthenticated)
}

func TestFullCatalogFlow(t *testing.T) {
	sessions, books, cleanup := setupIntegration(t)
	defer cleanup()

	ctx := context.Background()
	sessions.Register(ctx, api.SignupParams{
		FirstName: "Dana",
		LastName:  "Reed",
		Email:     "dana@example.com",
		Password:  "hunter2hunter2",
	})
	require.True(t, sessions.State().IsAuthenticated)

	books.CreateBook(ctx, api.BookParams{Title: "Dune", Author: "Frank Herbert"})
	books.CreateBook(ctx, api.BookParams{Title: "Hyperion", Author: "Dan Simmons"})
	require.Empty(t, books.State().Error)

	books.FetchBooks(ctx, 1, 10)
	state := books.State()
	require.Len(t, state.Books, 2)
	assert.Equal(t, "Hyperion", state.Books[0].Title)
	assert.Equal(t, catalog.Loaded, state.BooksLoad)

	books.UpdateBook(ctx, api.BookParams{Summary: "Pilgrims tell their tales."}, state.Books[0].ID)
	state = books.State()
	assert.Equal(t, "Pilgrims tell their tales.", state.Books[0].Summary)
	assert.Equal(t, "Hyperion", state.Books[0].Title)

	books.FetchBook(ctx, state.Books[1].ID)
	require.NotNil(t, books.State().SelectedBook)
	assert.Equal(t, "Dune", books.State().SelectedBook.Title)
}

func TestCatalogWriteRequiresSession(t *testing.T) {
	_, books, cleanup := setupIntegration(t)
	defer cleanup()

	books.CreateBook(context.Background(), api.BookParams{Title: "Dune", Author: "Frank Herbert"})
	state := books.State()
	assert.Nil(t, state.Books)
	assert.Equal(t, msgAuthRequired, state.Error)
}
