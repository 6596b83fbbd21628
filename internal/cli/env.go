// Package cli implements the command-line commands. Each command owns
// its flag set and wires the stores it needs from configuration.
package cli

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/revbook/revbook-client/internal/api"
	"github.com/revbook/revbook-client/internal/catalog"
	"github.com/revbook/revbook-client/internal/config"
	"github.com/revbook/revbook-client/internal/cookiejar"
	"github.com/revbook/revbook-client/internal/log"
	"github.com/revbook/revbook-client/internal/session"
	"github.com/revbook/revbook-client/internal/upload"
)

// Env bundles the wired application stores for one command run.
type Env struct {
	Config   *config.Config
	Log      zerolog.Logger
	Jar      *cookiejar.Jar
	Sessions *session.Store
	Catalog  *catalog.Store
}

// NewEnv builds the full dependency graph from environment config.
// The caller must Close it.
func NewEnv(cfg *config.Config) (*Env, error) {
	logger := log.New(cfg.Environment)

	jar, err := cookiejar.Open(cookiejar.Config{
		DatabasePath: cfg.Cookies.DatabasePath,
		SealingKey:   cfg.Cookies.SealingKey,
		KeyFilePath:  cfg.Cookies.KeyFilePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie jar: %w", err)
	}

	client := api.New(cfg.API.BaseURL, api.WithHTTPClient(&http.Client{
		Timeout: cfg.API.Timeout,
	}))

	var uploader session.Uploader
	if cfg.Upload.Endpoint != "" {
		uploader = upload.New(cfg.Upload.Endpoint, cfg.Upload.Preset)
	}

	return &Env{
		Config:   cfg,
		Log:      logger,
		Jar:      jar,
		Sessions: session.New(client, jar, uploader, logger),
		Catalog:  catalog.New(client, jar, logger),
	}, nil
}

// Close releases the cookie jar.
func (e *Env) Close() error {
	return e.Jar.Close()
}

// sessionError converts a recorded store error into a command error.
func sessionError(e *Env) error {
	if msg := e.Sessions.State().Error; msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// catalogError converts a recorded store error into a command error.
func catalogError(e *Env) error {
	if msg := e.Catalog.State().Error; msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return nil
}
