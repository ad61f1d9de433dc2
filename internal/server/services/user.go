// Package services contains server-side business logic. UserService handles
// registration, login, logout and token authentication; UploadService stores
// images and lists them per owner.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/server/auth"
	"github.com/dmitrijs2005/gallery/internal/server/models"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password hash
// - Login: verify credentials and mint a session token
// - Authenticate: resolve a session token to a username
// - Logout: revoke a session token
type UserService struct {
	users  users.Repository
	tokens *auth.TokenManager
	logger logging.Logger
}

func NewUserService(repo users.Repository, tokens *auth.TokenManager, logger logging.Logger) *UserService {
	return &UserService{
		users:  repo,
		tokens: tokens,
		logger: logger.With("module", "users"),
	}
}

// Register creates an account. The password is stored only as a hash.
func (s *UserService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		signupsTotal.WithLabelValues(resultInvalid).Inc()
		return common.Invalid("username and password are required")
	}
	if !common.IsValidUsername(username) {
		signupsTotal.WithLabelValues(resultInvalid).Inc()
		return common.Invalid("username may contain only letters and digits")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		signupsTotal.WithLabelValues(resultError).Inc()
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return common.ErrorInternal
	}

	if err := s.users.Create(ctx, &models.User{UserName: username, PasswordHash: hash}); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			signupsTotal.WithLabelValues(resultConflict).Inc()
			return fmt.Errorf("username %q: %w", username, common.ErrorAlreadyExists)
		}
		signupsTotal.WithLabelValues(resultError).Inc()
		return fmt.Errorf("error creating user: %w", err)
	}

	signupsTotal.WithLabelValues(resultOK).Inc()
	s.logger.Info(ctx, "user registered", "username", username)
	return nil
}

// Verify checks credentials and returns the identity. An unknown username
// yields common.ErrorNotFound, a wrong password common.ErrorUnauthorized.
func (s *UserService) Verify(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is unusable", "username", username, "error", err)
		return "", common.ErrorInternal
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}
	return user.UserName, nil
}

// Login verifies credentials and returns a fresh session token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	identity, err := s.Verify(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			loginsTotal.WithLabelValues(resultUnknown).Inc()
		case errors.Is(err, common.ErrorUnauthorized):
			loginsTotal.WithLabelValues(resultDenied).Inc()
		default:
			loginsTotal.WithLabelValues(resultError).Inc()
		}
		return "", err
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		loginsTotal.WithLabelValues(resultError).Inc()
		s.logger.Error(ctx, "token issue failed", "error", err)
		return "", common.ErrorInternal
	}

	loginsTotal.WithLabelValues(resultOK).Inc()
	return token, nil
}

// Authenticate resolves a bearer token to its username.
func (s *UserService) Authenticate(_ context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", common.ErrInvalidToken
	}
	return s.tokens.Verify(token)
}

// Logout revokes token until it would have expired anyway.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(token); err != nil {
		return err
	}
	revokedTokens.Set(float64(s.tokens.RevokedCount()))
	s.logger.Debug(ctx, "token revoked")
	return nil
}
