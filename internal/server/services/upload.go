package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/server/blobstore"
	"github.com/dmitrijs2005/gallery/internal/server/models"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/uploads"
)

const (
	// maxNameAttempts bounds regeneration when a blob name is already taken.
	maxNameAttempts = 5
	sniffLen        = 512
	maxTextLen      = 200
)

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

var preferredExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// UploadInput is one submitted image with its metadata.
type UploadInput struct {
	File         io.ReadSeeker
	Size         int64
	OriginalName string
	Title        string
	Artist       string
	Link         string
}

type UploadService struct {
	uploads  uploads.Repository
	blobs    blobstore.Store
	names    *NameGenerator
	maxBytes int64
	now      func() time.Time
	logger   logging.Logger
}

func NewUploadService(repo uploads.Repository, blobs blobstore.Store, maxBytes int64, logger logging.Logger) *UploadService {
	return &UploadService{
		uploads:  repo,
		blobs:    blobs,
		names:    NewNameGenerator(time.Now),
		maxBytes: maxBytes,
		now:      time.Now,
		logger:   logger.With("module", "uploads"),
	}
}

// WithClock replaces the time source for both record dates and blob names.
func (s *UploadService) WithClock(now func() time.Time) *UploadService {
	s.now = now
	s.names = NewNameGenerator(now)
	return s
}

func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Append stores the image under a fresh name and records it for owner.
func (s *UploadService) Append(ctx context.Context, owner string, in UploadInput) (*models.Upload, error) {
	rec, err := s.append(ctx, owner, in)
	switch {
	case err == nil:
		uploadsTotal.WithLabelValues(resultOK).Inc()
	case errors.Is(err, common.ErrorValidation):
		uploadsTotal.WithLabelValues(resultInvalid).Inc()
	default:
		uploadsTotal.WithLabelValues(resultError).Inc()
	}
	return rec, err
}

func (s *UploadService) append(ctx context.Context, owner string, in UploadInput) (*models.Upload, error) {
	if in.File == nil {
		return nil, common.Invalid("image file is required")
	}
	if in.Size == 0 {
		return nil, common.Invalid("image file is empty")
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return nil, common.Invalid(fmt.Sprintf("image is larger than %d bytes", s.maxBytes))
	}

	contentType, err := sniffImage(in.File)
	if err != nil {
		return nil, err
	}

	title, err := cleanText("title", in.Title)
	if err != nil {
		return nil, err
	}
	artist, err := cleanText("artist", in.Artist)
	if err != nil {
		return nil, err
	}
	link, err := cleanLink(in.Link)
	if err != nil {
		return nil, err
	}

	name, err := s.storeBlob(ctx, in, blobExt(in.OriginalName, contentType), contentType)
	if err != nil {
		return nil, err
	}

	rec := &models.Upload{
		Owner:      owner,
		Filename:   name,
		Title:      title,
		Artist:     artist,
		Link:       link,
		UploadDate: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.uploads.Append(ctx, rec); err != nil {
		if derr := s.blobs.Delete(context.WithoutCancel(ctx), name); derr != nil {
			s.logger.Warn(ctx, "orphaned blob left behind", "filename", name, "error", derr)
		}
		return nil, fmt.Errorf("error saving upload record: %w", err)
	}

	s.logger.Info(ctx, "image uploaded", "owner", owner, "filename", name, "bytes", in.Size)
	return rec, nil
}

func (s *UploadService) storeBlob(ctx context.Context, in UploadInput, ext, contentType string) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if _, err := in.File.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("rewind upload: %w", err)
		}

		name := s.names.Next(ext)
		err := s.blobs.Put(ctx, name, in.File, in.Size, contentType)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, common.ErrorAlreadyExists) {
			return "", fmt.Errorf("error storing image: %w", err)
		}
		s.logger.Debug(ctx, "blob name taken, regenerating", "filename", name)
	}
	return "", fmt.Errorf("no free blob name after %d attempts: %w", maxNameAttempts, common.ErrorInternal)
}

// ListFor returns owner's records in upload order, never nil.
func (s *UploadService) ListFor(ctx context.Context, owner string) ([]models.Upload, error) {
	list, err := s.uploads.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("error listing uploads: %w", err)
	}
	if list == nil {
		list = []models.Upload{}
	}
	return list, nil
}

// Open returns the stored image called filename.
func (s *UploadService) Open(ctx context.Context, filename string) (*blobstore.Object, error) {
	if !blobstore.ValidName(filename) {
		return nil, common.ErrorNotFound
	}
	return s.blobs.Open(ctx, filename)
}

func sniffImage(r io.ReadSeeker) (string, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	ct := http.DetectContentType(buf[:n])
	if !strings.HasPrefix(ct, "image/") {
		return "", common.Invalid("file is not an image")
	}
	return ct, nil
}

func blobExt(originalName, contentType string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if extPattern.MatchString(ext) {
		return ext
	}
	if ext, ok := preferredExt[contentType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func cleanText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if len([]rune(v)) > maxTextLen {
		return "", common.Invalid(fmt.Sprintf("%s is longer than %d characters", field, maxTextLen))
	}
	return v, nil
}

func cleanLink(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", common.Invalid("url must be an absolute http or https address")
	}
	return v, nil
}
