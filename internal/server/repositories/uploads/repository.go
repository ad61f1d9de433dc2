// Package uploads is the upload record store: image metadata tagged with
// the uploader's username.
package uploads

import (
	"context"

	"github.com/dmitrijs2005/gallery/internal/server/models"
)

type Repository interface {
	// Append stores a new record. A record with the same filename yields
	// common.ErrorAlreadyExists.
	Append(ctx context.Context, upload *models.Upload) error
	// ListByOwner returns the owner's records in insertion order. The result
	// is never nil.
	ListByOwner(ctx context.Context, owner string) ([]models.Upload, error)
}
