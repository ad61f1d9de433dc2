// Package users is the credential store: one record per registered account.
package users

import (
	"context"

	"github.com/dmitrijs2005/gallery/internal/server/models"
)

// Repository persists registered users.
//
// Create returns common.ErrorAlreadyExists when the username is taken.
// GetUserByLogin returns common.ErrorNotFound when it is absent.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
