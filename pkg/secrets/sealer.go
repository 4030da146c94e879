// Package secrets seals provider credentials before they are written to storage.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
	// sealedPrefix marks values produced by Seal so legacy plaintext rows still read.
	sealedPrefix = "sb1:"
)

// ErrInvalidKey is returned when the configured key is not 32 bytes of base64.
var ErrInvalidKey = errors.New("credentials key must be 32 bytes, base64 encoded")

// Sealer encrypts and decrypts short secrets with NaCl secretbox.
// A nil *Sealer passes values through unchanged.
type Sealer struct {
	key [keySize]byte
}

// NewSealer parses a base64 (std or URL alphabet) 32-byte key.
func NewSealer(encodedKey string) (*Sealer, error) {
	raw, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(encodedKey)
	}
	if err != nil || len(raw) != keySize {
		return nil, ErrInvalidKey
	}
	s := &Sealer{}
	copy(s.key[:], raw)
	return s, nil
}

// Seal encrypts plaintext. Empty values stay empty so presence checks on the
// stored column keep their meaning.
func (s *Sealer) Seal(plaintext string) (string, error) {
	if s == nil || plaintext == "" {
		return plaintext, nil
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return sealedPrefix + base64.RawStdEncoding.EncodeToString(box), nil
}

// Open reverses Seal. Values without the sealed prefix are returned as-is.
func (s *Sealer) Open(stored string) (string, error) {
	if s == nil || !strings.HasPrefix(stored, sealedPrefix) {
		return stored, nil
	}
	box, err := base64.RawStdEncoding.DecodeString(strings.TrimPrefix(stored, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}
	if len(box) < nonceSize+secretbox.Overhead {
		return "", errors.New("sealed value too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	out, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", errors.New("sealed value failed authentication")
	}
	return string(out), nil
}

// GenerateKey returns a fresh base64 key suitable for NewSealer.
func GenerateKey() (string, error) {
	buf := make([]byte, keySize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
