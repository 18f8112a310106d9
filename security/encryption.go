// Package security provides encryption at rest for stashed pending
// authorizations. Decision documents carry end-user identifiers (subject,
// login hint), so shared stores like Valkey should not hold them in the
// clear.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// keySize is the AES-256 key size in bytes.
const keySize = 32

// Encryptor encrypts ticket payloads with AES-256-GCM.
type Encryptor struct {
	key     []byte
	enabled bool
}

// NewEncryptor creates an encryptor from a raw 32-byte AES-256 key. A nil
// or empty key disables encryption, making Encrypt/Decrypt pass-throughs.
func NewEncryptor(key []byte) (*Encryptor, error) {
	if len(key) == 0 {
		return &Encryptor{enabled: false}, nil
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("security: encryption key must be exactly %d bytes for AES-256, got %d", keySize, len(key))
	}
	return &Encryptor{key: key, enabled: true}, nil
}

// NewEncryptorFromPassphrase derives the AES-256 key from an
// arbitrary-length secret with HKDF-SHA256, so deployments can configure a
// passphrase instead of managing raw key bytes. The salt must stay stable
// across restarts for existing ciphertexts to remain readable; the store's
// key prefix works well.
func NewEncryptorFromPassphrase(passphrase, salt string) (*Encryptor, error) {
	if passphrase == "" {
		return &Encryptor{enabled: false}, nil
	}

	key := make([]byte, keySize)
	kdf := hkdf.New(sha256.New, []byte(passphrase), []byte(salt), []byte("authlane-ticket-store"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("security: failed to derive key: %w", err)
	}
	return &Encryptor{key: key, enabled: true}, nil
}

// GenerateKey returns a fresh random AES-256 key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("security: failed to generate key: %w", err)
	}
	return key, nil
}

// IsEnabled reports whether encryption is active.
func (e *Encryptor) IsEnabled() bool {
	return e.enabled
}

// Encrypt encrypts plaintext and returns base64-encoded
// [nonce][ciphertext]. Pass-through when disabled.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	if !e.enabled {
		return plaintext, nil
	}

	gcm, err := e.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("security: failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Pass-through when disabled.
func (e *Encryptor) Decrypt(encoded string) (string, error) {
	if !e.enabled {
		return encoded, nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("security: failed to decode base64: %w", err)
	}

	gcm, err := e.aead()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", fmt.Errorf("security: ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("security: failed to decrypt: %w", err)
	}
	return string(plaintext), nil
}

func (e *Encryptor) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, fmt.Errorf("security: failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("security: failed to create GCM: %w", err)
	}
	return gcm, nil
}
