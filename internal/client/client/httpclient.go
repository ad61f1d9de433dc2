package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gallery/internal/client/models"
	"github.com/dmitrijs2005/gallery/internal/common"
)

// ImageField must match the server's multipart field name.
const ImageField = "image"

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the server at baseURL
// (e.g. "http://localhost:3000").
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("server url %q: expected http(s)://host[:port]", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageReply struct {
	Message string `json:"message"`
}

type tokenReply struct {
	Token string `json:"token"`
}

type uploadReply struct {
	Message string         `json:"message"`
	File    *models.Upload `json:"file"`
}

func (c *HTTPClient) Signup(ctx context.Context, username string, password []byte) error {
	return c.doJSON(ctx, http.MethodPost, "/signup", "", credentials{username, string(password)}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	var reply tokenReply
	if err := c.doJSON(ctx, http.MethodPost, "/login", "", credentials{username, string(password)}, &reply); err != nil {
		return "", err
	}
	if reply.Token == "" {
		return "", errors.New("login reply carries no token")
	}
	return reply.Token, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/logout", token, nil, nil)
}

func (c *HTTPClient) List(ctx context.Context, token string) ([]models.Upload, error) {
	items := []models.Upload{}
	if err := c.doJSON(ctx, http.MethodGet, "/images", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Ping checks that the server answers GET /health.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", "", nil, nil)
}

// ImageURL is where the server serves a stored file.
func (c *HTTPClient) ImageURL(filename string) string {
	return c.baseURL + common.UploadsPathPrefix + url.PathEscape(filename)
}

// Upload streams the image as multipart/form-data without buffering it.
func (c *HTTPClient) Upload(ctx context.Context, token string, u UploadRequest) (*models.Upload, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadForm(mw, u))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	setBearer(req, token)

	var reply uploadReply
	if err := c.do(req, &reply); err != nil {
		pr.Close()
		return nil, err
	}
	if reply.File == nil {
		return nil, errors.New("upload reply carries no file record")
	}
	return reply.File, nil
}

func writeUploadForm(mw *multipart.Writer, u UploadRequest) error {
	fields := [][2]string{{"title", u.Title}, {"artist", u.Artist}, {"url", u.Link}}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}

	part, err := mw.CreateFormFile(ImageField, u.FileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, u.Body); err != nil {
		return err
	}
	return mw.Close()
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	setBearer(req, token)

	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s reply: %w", req.URL.Path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var m messageReply
	if json.Unmarshal(data, &m) == nil && m.Message != "" {
		apiErr.Message = m.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}
}
