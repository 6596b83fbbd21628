// Package cookiejar provides a durable cookie store backed by SQLite,
// with values encrypted at rest using AES-256-GCM. The session store
// uses it to persist the remember token across process restarts, the
// way a browser keeps its cookie database.
package cookiejar

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/revbook/revbook-client/internal/crypto"
	"github.com/revbook/revbook-client/internal/entities"
)

const (
	// EnvSealingKey is the environment variable for the sealing key
	EnvSealingKey = "COOKIE_SEALING_KEY"

	// DefaultKeyFileName is the default name for the key file
	DefaultKeyFileName = ".revbook-cookie-key"
)

// Jar is a durable, process-wide cookie store. All access is
// synchronous; callers serialize writes with their own state
// transitions so a reload never observes a half-applied pair.
type Jar struct {
	db     *gorm.DB
	sealer *crypto.Sealer
}

// Config holds configuration for the cookie jar
type Config struct {
	// DatabasePath is the path to the SQLite database file
	DatabasePath string

	// SealingKey is the base64-encoded 32-byte encryption key.
	// If empty, will try to load from environment or key file.
	SealingKey string

	// KeyFilePath is the path to the sealing key file.
	// If empty, defaults to ~/.revbook-cookie-key.
	KeyFilePath string
}

// Open creates a cookie jar with the given configuration.
func Open(cfg Config) (*Jar, error) {
	key, err := resolveSealingKey(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sealing key: %w", err)
	}

	sealer, err := crypto.NewSealerFromBase64(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create sealer: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Cookie{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Jar{
		db:     db,
		sealer: sealer,
	}, nil
}

// resolveSealingKey determines the sealing key from various sources
func resolveSealingKey(cfg Config) (string, error) {
	// Priority 1: Explicitly provided key
	if cfg.SealingKey != "" {
		return cfg.SealingKey, nil
	}

	// Priority 2: Environment variable
	if envKey := os.Getenv(EnvSealingKey); envKey != "" {
		return envKey, nil
	}

	// Priority 3: Key file
	keyFilePath := cfg.KeyFilePath
	if keyFilePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		keyFilePath = filepath.Join(homeDir, DefaultKeyFileName)
	}

	if data, err := os.ReadFile(keyFilePath); err == nil {
		return string(data), nil
	}

	// Generate new key and save it with restricted permissions
	newKey, err := crypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate sealing key: %w", err)
	}
	if err := os.WriteFile(keyFilePath, []byte(newKey), 0600); err != nil {
		return "", fmt.Errorf("failed to save sealing key to %s: %w", keyFilePath, err)
	}

	return newKey, nil
}

// Set stores a cookie under the given name, scoped to the whole
// application path. An existing cookie with the same name is replaced.
func (j *Jar) Set(name, value string) error {
	sealed, err := j.sealer.Seal(value)
	if err != nil {
		return fmt.Errorf("failed to seal cookie %q: %w", name, err)
	}

	cookie := &entities.Cookie{
		Name:  name,
		Value: sealed,
		Path:  "/",
	}

	// Upsert: update if exists, create if not
	result := j.db.Where("name = ?", name).
		Assign(map[string]interface{}{
			"value": sealed,
			"path":  "/",
		}).
		FirstOrCreate(cookie)
	if result.Error != nil {
		return fmt.Errorf("failed to save cookie %q: %w", name, result.Error)
	}

	return nil
}

// Get retrieves a cookie value. The second return value reports
// whether the cookie exists; a missing cookie is not an error.
func (j *Jar) Get(name string) (string, bool, error) {
	var cookie entities.Cookie
	result := j.db.Where("name = ?", name).First(&cookie)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get cookie %q: %w", name, result.Error)
	}

	value, err := j.sealer.Open(cookie.Value)
	if err != nil {
		return "", false, fmt.Errorf("failed to unseal cookie %q: %w", name, err)
	}
	return value, true, nil
}

// Delete removes a cookie. Deleting a cookie that does not exist is
// not an error.
func (j *Jar) Delete(name string) error {
	result := j.db.Where("name = ?", name).Delete(&entities.Cookie{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cookie %q: %w", name, result.Error)
	}
	return nil
}

// Close closes the underlying database connection.
func (j *Jar) Close() error {
	db, err := j.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
