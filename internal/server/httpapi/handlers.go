package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/server/blobstore"
	"github.com/dmitrijs2005/gallery/internal/server/models"
	"github.com/dmitrijs2005/gallery/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const (
	// ImageField is the multipart field carrying the uploaded image.
	ImageField = "image"

	multipartMemory = 8 << 20
	// multipartSlack covers form fields and multipart framing around the image.
	multipartSlack = 1 << 20
)

// UserService is what the handlers need from services.UserService.
type UserService interface {
	Authenticator
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

// UploadService is what the handlers need from services.UploadService.
type UploadService interface {
	Append(ctx context.Context, owner string, in services.UploadInput) (*models.Upload, error)
	ListFor(ctx context.Context, owner string) ([]models.Upload, error)
	Open(ctx context.Context, filename string) (*blobstore.Object, error)
	MaxBytes() int64
}

type Handler struct {
	users   UserService
	uploads UploadService
	logger  logging.Logger
}

func NewHandler(users UserService, uploads UploadService, logger logging.Logger) *Handler {
	return &Handler{
		users:   users,
		uploads: uploads,
		logger:  logger.With("module", "httpapi"),
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type uploadResponse struct {
	Message string         `json:"message"`
	File    *models.Upload `json:"file"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "Server is alive!")
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if !decodeJSON(w, r, &c) {
		return
	}

	err := h.users.Register(r.Context(), c.Username, c.Password)
	switch {
	case err == nil:
		writeMessage(w, http.StatusOK, "signup successful")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeMessage(w, http.StatusBadRequest, "username already exists")
	default:
		h.writeError(w, r, err)
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if !decodeJSON(w, r, &c) {
		return
	}

	token, err := h.users.Login(r.Context(), c.Username, c.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusBadRequest, "user does not exist")
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "wrong password")
	default:
		h.writeError(w, r, err)
	}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context(), tokenFromContext(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "logged out")
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	owner, _ := IdentityFromContext(r.Context())

	if limit := h.uploads.MaxBytes(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartSlack)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("image is larger than %d bytes", h.uploads.MaxBytes()))
			return
		}
		writeMessage(w, http.StatusBadRequest, "request must be multipart/form-data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	in := services.UploadInput{
		Title:  r.FormValue("title"),
		Artist: r.FormValue("artist"),
		Link:   r.FormValue("url"),
	}

	file, header, err := r.FormFile(ImageField)
	switch {
	case err == nil:
		defer file.Close()
		in.File = file
		in.Size = header.Size
		in.OriginalName = header.Filename
	case errors.Is(err, http.ErrMissingFile):
	default:
		writeMessage(w, http.StatusBadRequest, "cannot read image field")
		return
	}

	rec, err := h.uploads.Append(r.Context(), owner, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Message: "upload successful", File: rec})
}

func (h *Handler) Images(w http.ResponseWriter, r *http.Request) {
	owner, _ := IdentityFromContext(r.Context())

	list, err := h.uploads.ListFor(r.Context(), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// File serves raw image bytes. Public, like the static directory it replaces.
func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	obj, err := h.uploads.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "file not found")
			return
		}
		h.writeError(w, r, err)
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if rs, ok := obj.Body.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, obj.ModTime, rs)
		return
	}

	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	if !obj.ModTime.IsZero() {
		w.Header().Set("Last-Modified", obj.ModTime.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		if _, err := io.Copy(w, obj.Body); err != nil {
			h.logger.Warn(r.Context(), "image stream interrupted", "filename", name, "error", err)
		}
	}
}

// decodeJSON reads a JSON body into dst, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}
