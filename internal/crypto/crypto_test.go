package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSealer(t *testing.T) {
	t.Run("valid key size", func(t *testing.T) {
		key := make([]byte, 32)
		s, err := NewSealer(key)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("invalid key size - too short", func(t *testing.T) {
		key := make([]byte, 16)
		s, err := NewSealer(key)
		assert.ErrorIs(t, err, ErrInvalidKeySize)
		assert.Nil(t, s)
	})

	t.Run("invalid key size - too long", func(t *testing.T) {
		key := make([]byte, 64)
		s, err := NewSealer(key)
		assert.ErrorIs(t, err, ErrInvalidKeySize)
		assert.Nil(t, s)
	})
}

func TestNewSealerFromBase64(t *testing.T) {
	t.Run("valid base64 key", func(t *testing.T) {
		key := make([]byte, 32)
		encoded := base64.StdEncoding.EncodeToString(key)
		s, err := NewSealerFromBase64(encoded)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("invalid base64", func(t *testing.T) {
		s, err := NewSealerFromBase64("not-valid-base64!!!")
		assert.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("valid base64 but wrong size", func(t *testing.T) {
		key := make([]byte, 16)
		encoded := base64.StdEncoding.EncodeToString(key)
		s, err := NewSealerFromBase64(encoded)
		assert.ErrorIs(t, err, ErrInvalidKeySize)
		assert.Nil(t, s)
	})
}

func TestSealOpen(t *testing.T) {
	encoded, err := GenerateKey()
	require.NoError(t, err)

	s, err := NewSealerFromBase64(encoded)
	require.NoError(t, err)

	t.Run("seal and open a token", func(t *testing.T) {
		value := "remember-token-12345"
		sealed, err := s.Seal(value)
		require.NoError(t, err)
		assert.NotEmpty(t, sealed)
		assert.NotEqual(t, value, sealed)

		opened, err := s.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, value, opened)
	})

	t.Run("empty value passes through", func(t *testing.T) {
		sealed, err := s.Seal("")
		require.NoError(t, err)
		assert.Empty(t, sealed)

		opened, err := s.Open("")
		require.NoError(t, err)
		assert.Empty(t, opened)
	})

	t.Run("seal is non-deterministic", func(t *testing.T) {
		first, err := s.Seal("same-value")
		require.NoError(t, err)
		second, err := s.Seal("same-value")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("tampered value fails to open", func(t *testing.T) {
		sealed, err := s.Seal("token")
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(sealed)
		require.NoError(t, err)
		raw[len(raw)-1] ^= 0xff
		tampered := base64.StdEncoding.EncodeToString(raw)

		_, err = s.Open(tampered)
		assert.ErrorIs(t, err, ErrOpenFailed)
	})

	t.Run("wrong key fails to open", func(t *testing.T) {
		sealed, err := s.Seal("token")
		require.NoError(t, err)

		otherKey, err := GenerateKey()
		require.NoError(t, err)
		other, err := NewSealerFromBase64(otherKey)
		require.NoError(t, err)

		_, err = other.Open(sealed)
		assert.ErrorIs(t, err, ErrOpenFailed)
	})

	t.Run("truncated value", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
		_, err := s.Open(short)
		assert.ErrorIs(t, err, ErrValueTooShort)
	})

	t.Run("garbage base64", func(t *testing.T) {
		_, err := s.Open("%%%not base64%%%")
		assert.Error(t, err)
	})
}
