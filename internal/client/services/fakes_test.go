package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/gallery/internal/client/client"
	"github.com/dmitrijs2005/gallery/internal/client/models"
	"github.com/dmitrijs2005/gallery/internal/common"
)

type fakeClient struct {
	signupErr error
	loginTok  string
	loginErr  error
	logoutErr error
	listItems []models.Upload
	listErr   error
	uploadErr error
	pingErr   error

	gotToken  string
	gotUpload client.UploadRequest
	gotBody   string
	logouts   int
}

func (f *fakeClient) Signup(context.Context, string, []byte) error { return f.signupErr }

func (f *fakeClient) Login(context.Context, string, []byte) (string, error) {
	return f.loginTok, f.loginErr
}

func (f *fakeClient) Logout(_ context.Context, tok string) error {
	f.logouts++
	f.gotToken = tok
	return f.logoutErr
}

func (f *fakeClient) Upload(_ context.Context, tok string, u client.UploadRequest) (*models.Upload, error) {
	f.gotToken = tok
	f.gotUpload = u
	b, _ := io.ReadAll(u.Body)
	f.gotBody = string(b)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &models.Upload{User: "alice", Filename: "1.png", Title: u.Title}, nil
}

func (f *fakeClient) List(_ context.Context, tok string) ([]models.Upload, error) {
	f.gotToken = tok
	return f.listItems, f.listErr
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) ImageURL(name string) string { return "http://srv/uploads/" + name }

type memTokens struct {
	tok     string
	saveErr error
}

func (m *memTokens) Load() (string, error) {
	if m.tok == "" {
		return "", common.ErrorNotFound
	}
	return m.tok, nil
}

func (m *memTokens) Save(tok string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tok = tok
	return nil
}

func (m *memTokens) Clear() error {
	m.tok = ""
	return nil
}
