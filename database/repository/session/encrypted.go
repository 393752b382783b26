package sessionRepo

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keyInfo = "doclink session tier"

type encryptedTier struct {
	inner Tier
	gcm   cipher.AEAD
}

// NewEncryptedTier wraps inner so values are stored as AES-256 GCM ciphertext
// under a key derived from secret. The nonce is prepended to each ciphertext.
func NewEncryptedTier(inner Tier, secret string) (Tier, error) {
	if secret == "" {
		return nil, fmt.Errorf("encryption secret is empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive tier key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &encryptedTier{inner: inner, gcm: gcm}, nil
}

func (e *encryptedTier) Get(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := e.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", false, fmt.Errorf("failed to decode session key %s: %w", key, err)
	}
	ns := e.gcm.NonceSize()
	if len(data) < ns {
		return "", false, fmt.Errorf("session key %s: ciphertext too short", key)
	}
	plain, err := e.gcm.Open(nil, data[:ns], data[ns:], []byte(key))
	if err != nil {
		return "", false, fmt.Errorf("failed to decrypt session key %s: %w", key, err)
	}
	return string(plain), true, nil
}

func (e *encryptedTier) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	// The key is bound as associated data so a value cannot be replayed under another key.
	sealed := e.gcm.Seal(nonce, nonce, []byte(value), []byte(key))
	return e.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

func (e *encryptedTier) Delete(ctx context.Context, keys ...string) error {
	return e.inner.Delete(ctx, keys...)
}

func (e *encryptedTier) Clear(ctx context.Context) error {
	return e.inner.Clear(ctx)
}
