package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gallery/internal/common"
)

// TokenManager is the session issuer/verifier: one shared secret, one
// validity duration, an optional revocation list.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	revoked  *RevocationList
	now      func() time.Time
}

func NewTokenManager(secretKey string, validity time.Duration) *TokenManager {
	return &TokenManager{
		secret:   []byte(secretKey),
		validity: validity,
		revoked:  NewRevocationList(validity),
		now:      time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

func (m *TokenManager) Validity() time.Duration { return m.validity }

// Issue mints a token for username.
func (m *TokenManager) Issue(username string) (string, error) {
	token, err := GenerateToken(username, m.secret, m.now(), m.validity)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify returns the username embedded in a valid, unexpired, unrevoked token.
func (m *TokenManager) Verify(token string) (string, error) {
	claims, err := ParseToken(token, m.secret, m.now)
	if err != nil {
		return "", err
	}
	if claims.ID != "" && m.revoked.IsRevoked(claims.ID) {
		return "", common.ErrTokenRevoked
	}
	return claims.Username, nil
}

// Revoke invalidates a currently valid token for the rest of its lifetime.
func (m *TokenManager) Revoke(token string) error {
	claims, err := ParseToken(token, m.secret, m.now)
	if err != nil {
		return err
	}
	if claims.ID == "" {
		return common.ErrInvalidToken
	}
	m.revoked.Revoke(claims.ID)
	return nil
}

// RevokedCount reports how many revoked ids are currently remembered.
func (m *TokenManager) RevokedCount() int {
	return m.revoked.Len()
}
