package uploads

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/server/models"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/jsonfile"
)

// JSONRepository keeps every user's records in one flat JSON array.
type JSONRepository struct {
	uploads *jsonfile.Collection[models.Upload]
}

func NewJSONRepository(c *jsonfile.Collection[models.Upload]) *JSONRepository {
	return &JSONRepository{uploads: c}
}

func (r *JSONRepository) Append(ctx context.Context, upload *models.Upload) error {
	err := r.uploads.Update(ctx, func(items []models.Upload) ([]models.Upload, error) {
		for _, u := range items {
			if u.Filename == upload.Filename {
				return nil, common.ErrorAlreadyExists
			}
		}
		return append(items, *upload), nil
	})
	if err != nil {
		return fmt.Errorf("append upload %q: %w", upload.Filename, err)
	}
	return nil
}

func (r *JSONRepository) ListByOwner(ctx context.Context, owner string) ([]models.Upload, error) {
	items, err := r.uploads.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load uploads: %w", err)
	}

	res := make([]models.Upload, 0)
	for _, u := range items {
		if u.Owner == owner {
			res = append(res, u)
		}
	}
	return res, nil
}
