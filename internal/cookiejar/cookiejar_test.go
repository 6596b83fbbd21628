package cookiejar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revbook/revbook-client/internal/crypto"
	"github.com/revbook/revbook-client/internal/entities"
)

func setupTestJar(t *testing.T) (*Jar, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cookiejar-test-*")
	require.NoError(t, err)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	jar, err := Open(Config{
		DatabasePath: filepath.Join(tempDir, "cookies.db"),
		SealingKey:   key,
	})
	require.NoError(t, err)

	cleanup := func() {
		jar.Close()
		os.RemoveAll(tempDir)
	}

	return jar, cleanup
}

func TestOpen(t *testing.T) {
	t.Run("creates jar with valid config", func(t *testing.T) {
		jar, cleanup := setupTestJar(t)
		defer cleanup()
		assert.NotNil(t, jar)
	})

	t.Run("fails with invalid sealing key", func(t *testing.T) {
		tempDir, _ := os.MkdirTemp("", "cookiejar-test-*")
		defer os.RemoveAll(tempDir)

		_, err := Open(Config{
			DatabasePath: filepath.Join(tempDir, "cookies.db"),
			SealingKey:   "invalid-key",
		})
		assert.Error(t, err)
	})

	t.Run("generates key file if missing", func(t *testing.T) {
		tempDir, _ := os.MkdirTemp("", "cookiejar-test-*")
		defer os.RemoveAll(tempDir)

		keyPath := filepath.Join(tempDir, "new-key")
		jar, err := Open(Config{
			DatabasePath: filepath.Join(tempDir, "cookies.db"),
			KeyFilePath:  keyPath,
		})
		require.NoError(t, err)
		defer jar.Close()

		_, err = os.Stat(keyPath)
		assert.NoError(t, err)
	})
}

func TestSetGetDelete(t *testing.T) {
	jar, cleanup := setupTestJar(t)
	defer cleanup()

	t.Run("round trip", func(t *testing.T) {
		err := jar.Set(entities.RememberTokenCookie, "tok1")
		require.NoError(t, err)

		value, ok, err := jar.Get(entities.RememberTokenCookie)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "tok1", value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, jar.Set(entities.RememberTokenCookie, "tok1"))
		require.NoError(t, jar.Set(entities.RememberTokenCookie, "tok2"))

		value, ok, err := jar.Get(entities.RememberTokenCookie)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "tok2", value)
	})

	t.Run("missing cookie", func(t *testing.T) {
		value, ok, err := jar.Get("no_such_cookie")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, jar.Set(entities.RememberTokenCookie, "tok3"))
		require.NoError(t, jar.Delete(entities.RememberTokenCookie))

		_, ok, err := jar.Get(entities.RememberTokenCookie)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete missing cookie is not an error", func(t *testing.T) {
		assert.NoError(t, jar.Delete("never_set"))
	})
}

func TestValuesEncryptedAtRest(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cookiejar-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	dbPath := filepath.Join(tempDir, "cookies.db")
	jar, err := Open(Config{DatabasePath: dbPath, SealingKey: key})
	require.NoError(t, err)

	require.NoError(t, jar.Set(entities.RememberTokenCookie, "super-secret-token"))
	require.NoError(t, jar.Close())

	raw, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret-token")
}

func TestPersistsAcrossReopen(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cookiejar-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	cfg := Config{
		DatabasePath: filepath.Join(tempDir, "cookies.db"),
		SealingKey:   key,
	}

	jar, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, jar.Set(entities.RememberTokenCookie, "tok1"))
	require.NoError(t, jar.Close())

	reopened, err := Open(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(entities.RememberTokenCookie)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok1", value)
}
