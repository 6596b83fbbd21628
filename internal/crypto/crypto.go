// Package crypto seals cookie values with AES-256-GCM before they are
// written to the on-disk cookie database.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	// KeySize is the required size for AES-256 keys (32 bytes)
	KeySize = 32
)

var (
	ErrInvalidKeySize = errors.New("sealing key must be 32 bytes for AES-256")
	ErrValueTooShort  = errors.New("sealed value too short")
	ErrOpenFailed     = errors.New("unseal failed: authentication error")
)

// Sealer encrypts and decrypts cookie values.
type Sealer struct {
	key []byte
}

// NewSealer creates a Sealer from a raw 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}

	// Copy key to avoid external mutation
	keyCopy := make([]byte, KeySize)
	copy(keyCopy, key)

	return &Sealer{key: keyCopy}, nil
}

// NewSealerFromBase64 creates a Sealer from a base64-encoded key.
func NewSealerFromBase64(encodedKey string) (*Sealer, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decode base64 key: %w", err)
	}
	return NewSealer(key)
}

// Seal encrypts a cookie value and returns base64-encoded ciphertext
// with the GCM nonce prepended. Empty values pass through unchanged.
func (s *Sealer) Seal(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	gcm, err := s.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(value), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
func (s *Sealer) Open(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}

	gcm, err := s.aead()
	if err != nil {
		return "", err
	}

	if len(sealed) < gcm.NonceSize() {
		return "", ErrValueTooShort
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	value, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrOpenFailed
	}

	return string(value), nil
}

func (s *Sealer) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return gcm, nil
}

// GenerateKey generates a new random AES-256 key, base64-encoded.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
