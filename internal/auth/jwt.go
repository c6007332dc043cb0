package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"restaurant-hub/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrTokenRevoked = errors.New("token has been revoked")

// JWTCustomClaims carries the signed-in user record, so the token itself is
// the device-side session storage.
type JWTCustomClaims struct {
	User json.RawMessage `json:"user"`
	jwt.RegisteredClaims
}

// Tokens signs session tokens and remembers which ones were logged out.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // token id -> expiry
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Storage returns session storage backed by token. An empty token is an empty
// storage.
func (t *Tokens) Storage(token string) *TokenStorage {
	return &TokenStorage{tokens: t, token: token}
}

func (t *Tokens) sign(user []byte) (string, *JWTCustomClaims, error) {
	now := t.now()
	claims := &JWTCustomClaims{
		User: json.RawMessage(user),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (t *Tokens) parse(tokenStr string) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if t.isRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func (t *Tokens) revoke(claims *JWTCustomClaims) {
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for id, e := range t.revoked {
		if !e.After(now) {
			delete(t.revoked, id)
		}
	}
	t.revoked[claims.ID] = exp
}

func (t *Tokens) isRevoked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.revoked[id]
	return ok
}

// TokenStorage implements session.Storage on top of a bearer token. Writing
// the user record signs a new token; removing it revokes the current one.
type TokenStorage struct {
	tokens *Tokens
	token  string
	claims *JWTCustomClaims
}

var _ session.Storage = (*TokenStorage)(nil)

// Token is the token after the last write, for handing back to the client.
func (s *TokenStorage) Token() string {
	return s.token
}

// ExpiresAt reports when the current token stops being accepted.
func (s *TokenStorage) ExpiresAt() time.Time {
	if s.claims == nil || s.claims.ExpiresAt == nil {
		return time.Time{}
	}
	return s.claims.ExpiresAt.Time
}

func (s *TokenStorage) Get(key string) ([]byte, bool, error) {
	if key != session.StorageKey || s.token == "" {
		return nil, false, nil
	}
	if s.claims == nil {
		claims, err := s.tokens.parse(s.token)
		if err != nil {
			return nil, false, err
		}
		s.claims = claims
	}
	return []byte(s.claims.User), true, nil
}

func (s *TokenStorage) Set(key string, value []byte) error {
	if key != session.StorageKey {
		return fmt.Errorf("token storage cannot hold %q", key)
	}
	signed, claims, err := s.tokens.sign(value)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	s.token, s.claims = signed, claims
	return nil
}

func (s *TokenStorage) Remove(key string) error {
	if key != session.StorageKey || s.token == "" {
		return nil
	}
	if s.claims == nil {
		claims, err := s.tokens.parse(s.token)
		if err != nil {
			// Nothing valid to revoke.
			s.token = ""
			return nil
		}
		s.claims = claims
	}
	s.tokens.revoke(s.claims)
	s.token, s.claims = "", nil
	return nil
}
