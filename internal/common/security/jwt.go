package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/Parth2500/Jwt-Auth/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = time.Hour

// Claims is the identity carried by a bearer token.
type Claims struct {
	UserID   string
	Username string
}

// TokenIssuer signs and verifies HS256 bearer tokens. When an Envelope is
// attached, issued tokens are sealed and verified tokens are opened first.
type TokenIssuer struct {
	auth     *jwtauth.JWTAuth
	ttl      time.Duration
	envelope *Envelope
	now      func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration, envelope *Envelope) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		auth:     jwtauth.New("HS256", secret, nil),
		ttl:      ttl,
		envelope: envelope,
		now:      time.Now,
	}
}

func (i *TokenIssuer) EnvelopeEnabled() bool {
	return i.envelope != nil
}

func (i *TokenIssuer) Issue(userID, username string) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"id":       userID,
		"username": username,
		"exp":      now.Add(i.ttl).Unix(),
		"iat":      now.Unix(),
	}
	_, tokenString, err := i.auth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	if i.envelope == nil {
		return tokenString, nil
	}
	return i.envelope.Seal(tokenString)
}

// Verify returns the claims of a valid token, or one of ErrTokenMissing,
// ErrTokenExpired, ErrTokenInvalid.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrTokenMissing
	}
	if i.envelope != nil {
		opened, err := i.envelope.Open(tokenString)
		if err != nil {
			return nil, err
		}
		tokenString = opened
	}

	token, err := jwtauth.VerifyToken(i.auth, tokenString)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrTokenInvalid, err)
	}

	return claimsFromMap(token.PrivateClaims())
}

func claimsFromMap(m map[string]interface{}) (*Claims, error) {
	id, ok := m["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: id claim is missing or not a string", common.ErrTokenInvalid)
	}
	username, ok := m["username"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: username claim is missing or not a string", common.ErrTokenInvalid)
	}
	return &Claims{UserID: id, Username: username}, nil
}
