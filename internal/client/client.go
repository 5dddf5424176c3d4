// Package client talks to the portfolio API on behalf of the public site and
// the CMS. Admin calls carry a bearer token when a token source is configured.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/ishanichuri/portfolio/internal/markers"
	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

const defaultViewSource = "public-site"

// Clock returns the current time.
type Clock func() time.Time

// UploadedImage is the result of UploadImage.
type UploadedImage struct {
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
}

type presignResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
}

type Client struct {
	baseURL    string
	plain      *http.Client
	authed     *http.Client
	markers    markers.Store
	now        Clock
	viewSource string
}

type Option func(*Client)

// WithHTTPClient sets the underlying client used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.plain = hc }
}

// WithTokenSource attaches "Authorization: Bearer" to admin calls.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		if ts == nil {
			return
		}
		c.authed = &http.Client{Transport: &optionalBearer{source: ts}}
	}
}

// WithMarkerStore sets where the once-per-day view markers are kept.
func WithMarkerStore(s markers.Store) Option {
	return func(c *Client) { c.markers = s }
}

func WithClock(now Clock) Option {
	return func(c *Client) { c.now = now }
}

// WithViewSource overrides the "source" reported with website views.
func WithViewSource(source string) Option {
	return func(c *Client) {
		if source != "" {
			c.viewSource = source
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		plain:      &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
		viewSource: defaultViewSource,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.authed != nil {
		// share timeout and base transport with the plain client
		c.authed.Transport.(*optionalBearer).base = c.plain.Transport
		c.authed.Timeout = c.plain.Timeout
	} else {
		c.authed = c.plain
	}
	if c.markers == nil {
		c.markers = markers.NewMemoryStore()
	}
	return c
}

// ListProjects returns every project, drafts included.
func (c *Client) ListProjects(ctx context.Context) ([]domain.ProjectRecord, error) {
	var out []domain.ProjectRecord
	status, err := c.do(ctx, c.authed, http.MethodGet, "/api/projects?status_filter=all", nil, &out)
	if err != nil {
		return nil, failure("load", "projects", status, err)
	}
	return out, nil
}

// GetPublishedProjects never fails: any error yields the fallback dataset.
func (c *Client) GetPublishedProjects(ctx context.Context) []domain.ProjectRecord {
	var out []domain.ProjectRecord
	if _, err := c.do(ctx, c.plain, http.MethodGet, "/api/projects?status_filter=published", nil, &out); err != nil {
		return Fallback(c.now())
	}
	return out
}

// GetPublishedProjectByID returns the published project, falling back to the
// placeholder dataset when the API is unreachable.
func (c *Client) GetPublishedProjectByID(ctx context.Context, projectID string) (*domain.ProjectRecord, bool) {
	var rec domain.ProjectRecord
	if _, err := c.do(ctx, c.plain, http.MethodGet, "/api/projects/"+url.PathEscape(projectID), nil, &rec); err != nil {
		return fallbackByID(c.now(), projectID)
	}
	if rec.Status != domain.StatusPublished {
		return nil, false
	}
	return &rec, true
}

func (c *Client) CreateProject(ctx context.Context, in domain.ProjectInput) (*domain.ProjectRecord, error) {
	var rec domain.ProjectRecord
	status, err := c.do(ctx, c.authed, http.MethodPost, "/api/projects", in, &rec)
	if err != nil {
		return nil, failure("create", "project", status, err)
	}
	return &rec, nil
}

func (c *Client) UpdateProject(ctx context.Context, projectID string, patch domain.ProjectPatch) (*domain.ProjectRecord, error) {
	var rec domain.ProjectRecord
	status, err := c.do(ctx, c.authed, http.MethodPut, "/api/projects/"+url.PathEscape(projectID), patch, &rec)
	if err != nil {
		return nil, failure("update", "project", status, err)
	}
	return &rec, nil
}

func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	status, err := c.do(ctx, c.authed, http.MethodDelete, "/api/projects/"+url.PathEscape(projectID), nil, nil)
	if err != nil {
		return failure("delete", "project", status, err)
	}
	return nil
}

func (c *Client) SetProjectStatus(ctx context.Context, projectID string, s domain.Status) (*domain.ProjectRecord, error) {
	var rec domain.ProjectRecord
	body := map[string]string{"status": string(s)}
	status, err := c.do(ctx, c.authed, http.MethodPost, "/api/projects/"+url.PathEscape(projectID)+"/status", body, &rec)
	if err != nil {
		return nil, failure("update", "status", status, err)
	}
	return &rec, nil
}

// UploadImage presigns a key and PUTs body to it. A failed PUT leaves the key
// unused; nothing is cleaned up.
func (c *Client) UploadImage(ctx context.Context, fileName, contentType string, body io.Reader) (*UploadedImage, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	var ps presignResponse
	req := map[string]string{"file_name": fileName, "content_type": contentType}
	status, err := c.do(ctx, c.authed, http.MethodPost, "/api/images/presign", req, &ps)
	if err != nil {
		return nil, failure("get", "upload URL", status, err)
	}

	put, err := http.NewRequestWithContext(ctx, http.MethodPut, ps.UploadURL, body)
	if err != nil {
		return nil, failure("upload", "image", 0, err)
	}
	put.Header.Set("Content-Type", contentType)
	res, err := c.plain.Do(put)
	if err != nil {
		return nil, failure("upload", "image", 0, err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, failure("upload", "image", res.StatusCode, fmt.Errorf("status %d", res.StatusCode))
	}
	return &UploadedImage{Key: ps.Key, PublicURL: ps.PublicURL}, nil
}

// do sends one JSON request. It returns the response status (0 on transport
// failure) and an error for anything outside 2xx.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return res.StatusCode, fmt.Errorf("%s %s: status %d", method, path, res.StatusCode)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return res.StatusCode, nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return res.StatusCode, fmt.Errorf("decode %s: %w", path, err)
	}
	return res.StatusCode, nil
}
