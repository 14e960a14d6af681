package credstore

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrSealCorrupt indicates stored ciphertext that no longer opens with the
// local keyfile, typically after the keyfile was replaced.
var ErrSealCorrupt = errors.New("credstore: sealed value does not open")

// SealedStore wraps a Store and seals token values at rest with
// ChaCha20-Poly1305. The key lives in a local keyfile, generated on first use.
type SealedStore struct {
	inner Store
	aead  cipher.AEAD
}

// NewSealedStore wraps inner using the key stored at keyPath.
func NewSealedStore(inner Store, keyPath string) (*SealedStore, error) {
	key, err := loadOrCreateKey(keyPath)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return &SealedStore{inner: inner, aead: aead}, nil
}

func (s *SealedStore) Save(ctx context.Context, pair TokenPair) error {
	access, err := s.seal(pair.Access)
	if err != nil {
		return err
	}
	refresh, err := s.seal(pair.Refresh)
	if err != nil {
		return err
	}
	return s.inner.Save(ctx, TokenPair{Access: access, Refresh: refresh})
}

// Read opens the sealed pair. A pair sealed under a lost key reads as absent
// so a stale keyfile degrades to a fresh login rather than a hard failure.
func (s *SealedStore) Read(ctx context.Context) (TokenPair, bool, error) {
	sealed, ok, err := s.inner.Read(ctx)
	if err != nil || !ok {
		return TokenPair{}, false, err
	}
	access, err := s.open(sealed.Access)
	if err != nil {
		return TokenPair{}, false, nil
	}
	refresh, err := s.open(sealed.Refresh)
	if err != nil {
		return TokenPair{}, false, nil
	}
	if access == "" || refresh == "" {
		return TokenPair{}, false, nil
	}
	return TokenPair{Access: access, Refresh: refresh}, true, nil
}

func (s *SealedStore) Clear(ctx context.Context) error {
	return s.inner.Clear(ctx)
}

func (s *SealedStore) seal(value string) (string, error) {
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	box := s.aead.Seal(nonce, nonce, []byte(value), nil)
	return base64.StdEncoding.EncodeToString(box), nil
}

func (s *SealedStore) open(value string) (string, error) {
	box, err := base64.StdEncoding.DecodeString(value)
	if err != nil || len(box) < chacha20poly1305.NonceSize {
		return "", ErrSealCorrupt
	}
	nonce, ciphertext := box[:chacha20poly1305.NonceSize], box[chacha20poly1305.NonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrSealCorrupt
	}
	return string(plaintext), nil
}

func loadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("keyfile %s: expected %d bytes, got %d", path, chacha20poly1305.KeySize, len(key))
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read keyfile: %w", err)
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write keyfile: %w", err)
	}
	return key, nil
}
