package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/server/auth"
	"github.com/dmitrijs2005/gallery/internal/server/blobstore"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gallery/internal/server/services"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{1}, 64)...)

type testAPI struct {
	handler http.Handler
	tokens  *auth.TokenManager
	now     time.Time
}

func newTestAPI(t *testing.T, maxBytes int64) *testAPI {
	t.Helper()
	dir := t.TempDir()

	rm, err := repomanager.NewJSONRepositoryManager(filepath.Join(dir, "data"))
	require.NoError(t, err)
	blobs, err := blobstore.NewLocalStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	api := &testAPI{now: time.Now()}
	api.tokens = auth.NewTokenManager("test-secret", 2*time.Hour).WithClock(func() time.Time { return api.now })

	users := services.NewUserService(rm.Users(), api.tokens, logging.Nop{})
	uploads := services.NewUploadService(rm.Uploads(), blobs, maxBytes, logging.Nop{})

	api.handler = NewRouter(NewHandler(users, uploads, logging.Nop{}), logging.Nop{})
	return api
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) postJSON(path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func (a *testAPI) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(req)
}

func (a *testAPI) signupAndLogin(t *testing.T, username, password string) string {
	t.Helper()
	rec := a.postJSON("/signup", credentials{Username: username, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.postJSON("/login", credentials{Username: username, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tr tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tr))
	require.NotEmpty(t, tr.Token)
	return tr.Token
}

type part struct {
	field, filename string
	data            []byte
}

func multipartRequest(t *testing.T, path, token string, fields map[string]string, files ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = io.Copy(fw, bytes.NewReader(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m.Message
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }
