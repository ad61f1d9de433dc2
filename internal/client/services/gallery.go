package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gallery/internal/client/client"
	"github.com/dmitrijs2005/gallery/internal/client/models"
	"github.com/dmitrijs2005/gallery/internal/client/repositories/token"
)

// Entry is a listed record together with the URL its image is served from.
type Entry struct {
	models.Upload
	ImageURL string
}

type GalleryService interface {
	Upload(ctx context.Context, in models.NewUpload) (*Entry, error)
	List(ctx context.Context) ([]Entry, error)
}

type galleryService struct {
	client client.Client
	tokens token.Repository
}

func NewGalleryService(c client.Client, tokens token.Repository) GalleryService {
	return &galleryService{client: c, tokens: tokens}
}

func (s *galleryService) Upload(ctx context.Context, in models.NewUpload) (*Entry, error) {
	tok, err := loadToken(s.tokens)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(in.Path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	rec, err := s.client.Upload(ctx, tok, client.UploadRequest{
		FileName: filepath.Base(in.Path),
		Body:     f,
		Title:    in.Title,
		Artist:   in.Artist,
		Link:     in.Link,
	})
	if err != nil {
		return nil, s.sessionError(err)
	}
	return &Entry{Upload: *rec, ImageURL: s.client.ImageURL(rec.Filename)}, nil
}

// List returns the caller's records in server order.
func (s *galleryService) List(ctx context.Context) ([]Entry, error) {
	tok, err := loadToken(s.tokens)
	if err != nil {
		return nil, err
	}

	items, err := s.client.List(ctx, tok)
	if err != nil {
		return nil, s.sessionError(err)
	}

	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, Entry{Upload: it, ImageURL: s.client.ImageURL(it.Filename)})
	}
	return entries, nil
}

// sessionError drops the stored token when the server refuses it.
func (s *galleryService) sessionError(err error) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	if clearErr := s.tokens.Clear(); clearErr != nil {
		return errors.Join(ErrSessionEnded, clearErr)
	}
	return fmt.Errorf("%w: %v", ErrSessionEnded, err)
}
