// Package stubserver is an in-memory implementation of the RevBook
// backend contract, used for local development and integration tests.
// It speaks the same envelope as the real service: every response is
// {"status":"success","data":...} or {"status":"fail","message":"..."}.
package stubserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/revbook/revbook-client/internal/entities"
)

const (
	msgEmailRequired      = "Email address is required"
	msgEmailTaken         = "Email address is already taken"
	msgPasswordTooShort   = "Password must be at least 8 characters long"
	msgInvalidCredentials = "Invalid email or password provided"
	msgAuthRequired       = "You must be logged in to do that"
	msgUserNotFound       = "User not found"
	msgBookNotFound       = "Book not found"
	msgTitleRequired      = "Title is required"
	msgAuthorRequired     = "Author is required"

	minPasswordLength = 8
)

// account is a stored user plus its credential hash.
type account struct {
	profile      entities.UserProfile
	passwordHash string
}

// Server holds all state behind a mutex. IDs grow monotonically and
// are never reused within a process lifetime.
type Server struct {
	log zerolog.Logger

	mu         sync.Mutex
	users      map[uint]*account
	byEmail    map[string]uint
	tokens     map[string]uint
	books      map[uint]*entities.Book
	bookOrder  []uint
	nextUserID uint
	nextBookID uint
}

// New creates an empty stub server.
func New(log zerolog.Logger) *Server {
	return &Server{
		log:        log.With().Str("component", "stubserver").Logger(),
		users:      make(map[uint]*account),
		byEmail:    make(map[string]uint),
		tokens:     make(map[string]uint),
		books:      make(map[uint]*entities.Book),
		nextUserID: 1,
		nextBookID: 1,
	}
}

// Router builds the gin engine with every contract endpoint registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.POST("/api/users/signup", s.Signup)
	router.POST("/api/users/login", s.Login)
	router.GET("/api/users/info", s.UserInfo)
	router.GET("/api/users/:id", s.GetUser)
	router.POST("/api/users/update/:id", s.requireUser, s.UpdateUser)

	router.GET("/api/books", s.ListBooks)
	router.POST("/api/books/new", s.requireUser, s.CreateBook)
	router.GET("/api/books/:id", s.GetBook)
	router.POST("/api/books/update/:id", s.requireUser, s.UpdateBook)

	return router
}

// respondData wraps a payload in the success envelope.
func respondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

// respondFail wraps a message in the failure envelope.
func respondFail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "fail", "message": message})
}

const contextKeyUserID = "user_id"

// requireUser resolves the remember_token cookie to an account and
// aborts with 401 when it cannot.
func (s *Server) requireUser(c *gin.Context) {
	token, err := c.Cookie(entities.RememberTokenCookie)
	if err != nil || token == "" {
		respondFail(c, http.StatusUnauthorized, msgAuthRequired)
		c.Abort()
		return
	}

	s.mu.Lock()
	userID, ok := s.tokens[token]
	s.mu.Unlock()
	if !ok {
		respondFail(c, http.StatusUnauthorized, msgAuthRequired)
		c.Abort()
		return
	}

	c.Set(contextKeyUserID, userID)
	c.Next()
}

// issueToken mints a remember token for the account. Callers must hold
// the mutex.
func (s *Server) issueToken(userID uint) (string, error) {
	token, err := generateRememberToken()
	if err != nil {
		return "", err
	}
	s.tokens[token] = userID
	return token, nil
}

// now is indirected so tests can freeze timestamps.
var now = time.Now
