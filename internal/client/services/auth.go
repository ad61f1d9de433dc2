// Package services holds the CLI's use cases on top of the API client and
// the local token file.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/client/client"
	"github.com/dmitrijs2005/gallery/internal/client/repositories/token"
	"github.com/dmitrijs2005/gallery/internal/common"
)

var (
	// ErrNotLoggedIn means no session token is stored locally.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrSessionEnded means the server rejected the stored token; it has been discarded.
	ErrSessionEnded = errors.New("session ended, please log in again")
)

type AuthService interface {
	Signup(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	LoggedIn() bool
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	tokens token.Repository
}

func NewAuthService(c client.Client, tokens token.Repository) AuthService {
	return &authService{client: c, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, username string, password []byte) error {
	return s.client.Signup(ctx, username, password)
}

// Login replaces any stored token with a fresh one.
func (s *authService) Login(ctx context.Context, username string, password []byte) error {
	tok, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := s.tokens.Save(tok); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Logout revokes the token on the server and always forgets it locally.
// A token the server no longer accepts counts as logged out.
func (s *authService) Logout(ctx context.Context) error {
	tok, err := loadToken(s.tokens)
	if err != nil {
		return err
	}

	remoteErr := s.client.Logout(ctx, tok)
	if errors.Is(remoteErr, client.ErrUnauthorized) {
		remoteErr = nil
	}

	if err := s.tokens.Clear(); err != nil {
		return err
	}
	return remoteErr
}

func (s *authService) LoggedIn() bool {
	_, err := s.tokens.Load()
	return err == nil
}

// Ping checks that the server is reachable and healthy.
func (s *authService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func loadToken(tokens token.Repository) (string, error) {
	tok, err := tokens.Load()
	if errors.Is(err, common.ErrorNotFound) {
		return "", ErrNotLoggedIn
	}
	return tok, err
}
