// Package api implements the RevBook HTTP API client. Every response
// uses the envelope {"status":"success","data":...} on success and
// {"status":"fail","message":"..."} on rejection.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/revbook/revbook-client/internal/entities"
)

const defaultTimeout = 10 * time.Second

// Client talks to the RevBook backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a RevBook API client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   baseURL,
		userAgent: "RevBookClient/1.0 (https://github.com/revbook/revbook-client)",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignupParams are the fields required to register an account.
type SignupParams struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Credentials are the fields required to log in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate carries profile fields for an update request. Empty
// fields are omitted so the server keeps the current values.
type UserUpdate struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar,omitempty"`
}

// BookParams carries book fields for create and update requests.
type BookParams struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	ImageURL string `json:"image"`
}

// AuthResult is the payload of a successful signup or login: the
// profile plus the opaque remember token.
type AuthResult struct {
	entities.UserProfile
	Token string `json:"remember"`
}

// envelope is the fixed response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Signup registers a new account.
// POST /api/users/signup
func (c *Client) Signup(ctx context.Context, params SignupParams) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/users/signup", "", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates with an email and password.
// POST /api/users/login
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/users/login", "", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UserInfo resolves the profile behind a remember token.
// GET /api/users/info?token=T
func (c *Client) UserInfo(ctx context.Context, token string) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	query := url.Values{"token": {token}}
	path := "/api/users/info?" + query.Encode()
	if err := c.do(ctx, http.MethodGet, path, "", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UserByID fetches another user's public profile.
// GET /api/users/{id}
func (c *Client) UserByID(ctx context.Context, id uint) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	path := fmt.Sprintf("/api/users/%d", id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateUser updates profile fields for the given user.
// POST /api/users/update/{id}
func (c *Client) UpdateUser(ctx context.Context, token string, id uint, fields UserUpdate) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	path := fmt.Sprintf("/api/users/update/%d", id)
	if err := c.do(ctx, http.MethodPost, path, token, fields, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Books fetches a page of the catalog.
// GET /api/books?page=&limit=
func (c *Client) Books(ctx context.Context, page, limit int) ([]entities.Book, error) {
	var books []entities.Book
	path := fmt.Sprintf("/api/books?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook posts a new catalog entry.
// POST /api/books/new
func (c *Client) CreateBook(ctx context.Context, token string, params BookParams) (*entities.Book, error) {
	var book entities.Book
	if err := c.do(ctx, http.MethodPost, "/api/books/new", token, params, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Book fetches a single catalog entry with its reviews.
// GET /api/books/{id}
func (c *Client) Book(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	path := fmt.Sprintf("/api/books/%d", id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook updates an existing catalog entry.
// POST /api/books/update/{id}
func (c *Client) UpdateBook(ctx context.Context, token string, id uint, params BookParams) (*entities.Book, error) {
	var book entities.Book
	path := fmt.Sprintf("/api/books/update/%d", id)
	if err := c.do(ctx, http.MethodPost, path, token, params, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// do issues one request and decodes the envelope. A non-nil token is
// attached as the remember_token cookie for authenticated endpoints.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: entities.RememberTokenCookie, Value: token, Path: "/"})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkErr(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			// Rejection without a structured body still surfaces as one.
			return rejectionErr("")
		}
		return networkErr(fmt.Errorf("decode response: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest || env.Status == "fail" {
		return rejectionErr(env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return networkErr(fmt.Errorf("decode payload: %w", err))
		}
	}
	return nil
}
