package security

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/Parth2500/Jwt-Auth/internal/common"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const EnvelopeKeySize = chacha20poly1305.KeySize

var envelopeInfo = []byte("jwt-auth token envelope v1")

// Envelope seals signed tokens with XChaCha20-Poly1305. The key only ever
// lives in this struct, so an Envelope without a key cannot be built.
type Envelope struct {
	aead cipher.AEAD
}

func NewEnvelope(key []byte) (*Envelope, error) {
	if len(key) != EnvelopeKeySize {
		return nil, fmt.Errorf("envelope key must be %d bytes, got %d", EnvelopeKeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init envelope cipher: %w", err)
	}
	return &Envelope{aead: aead}, nil
}

// GenerateEnvelopeKey returns a fresh random key. Tokens sealed with it
// become unreadable once the process exits.
func GenerateEnvelopeKey() ([]byte, error) {
	key := make([]byte, EnvelopeKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate envelope key: %w", err)
	}
	return key, nil
}

// DeriveEnvelopeKey stretches a configured secret into an envelope key.
func DeriveEnvelopeKey(secret []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, errors.New("envelope secret is empty")
	}
	key := make([]byte, EnvelopeKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, envelopeInfo), key); err != nil {
		return nil, fmt.Errorf("derive envelope key: %w", err)
	}
	return key, nil
}

func (e *Envelope) Seal(token string) (string, error) {
	nonce := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(token)+e.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("envelope nonce: %w", err)
	}
	sealed := e.aead.Seal(nonce, nonce, []byte(token), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. A wrong key and a tampered ciphertext are
// indistinguishable and both yield ErrTokenInvalid.
func (e *Envelope) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: envelope is not base64url", common.ErrTokenInvalid)
	}
	if len(raw) < e.aead.NonceSize()+e.aead.Overhead() {
		return "", fmt.Errorf("%w: envelope too short", common.ErrTokenInvalid)
	}
	nonce, ciphertext := raw[:e.aead.NonceSize()], raw[e.aead.NonceSize():]
	plain, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: envelope authentication failed", common.ErrTokenInvalid)
	}
	return string(plain), nil
}
