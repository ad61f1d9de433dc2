package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/gallery/internal/client/models"
)

// Client is the gallery API as seen by the CLI. Token-bearing calls take
// the bearer token explicitly so the caller decides where it is stored.
type Client interface {
	Signup(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (string, error)
	Logout(ctx context.Context, token string) error
	Upload(ctx context.Context, token string, u UploadRequest) (*models.Upload, error)
	List(ctx context.Context, token string) ([]models.Upload, error)
	Ping(ctx context.Context) error
	ImageURL(filename string) string
}

// UploadRequest is the multipart body of POST /upload.
type UploadRequest struct {
	FileName string
	Body     io.Reader
	Title    string
	Artist   string
	Link     string
}
