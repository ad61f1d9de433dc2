package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/server/models"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/jsonfile"
)

// JSONRepository keeps users in a flat JSON array file.
type JSONRepository struct {
	users *jsonfile.Collection[models.User]
}

func NewJSONRepository(c *jsonfile.Collection[models.User]) *JSONRepository {
	return &JSONRepository{users: c}
}

// Create appends user unless the username is already present. The check
// and the append run under the same collection lock.
func (r *JSONRepository) Create(ctx context.Context, user *models.User) error {
	err := r.users.Update(ctx, func(items []models.User) ([]models.User, error) {
		for _, u := range items {
			if u.UserName == user.UserName {
				return nil, common.ErrorAlreadyExists
			}
		}
		return append(items, *user), nil
	})
	if err != nil {
		return fmt.Errorf("create user %q: %w", user.UserName, err)
	}
	return nil
}

func (r *JSONRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	items, err := r.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	for i := range items {
		if items[i].UserName == userName {
			return &items[i], nil
		}
	}
	return nil, common.ErrorNotFound
}
