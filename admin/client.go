// Package admin implements the portal side of project management: an HTTP
// client for the admin endpoints and an ordered project list that applies
// edits optimistically and reconciles them against the server.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omar-mohamud/raagsanplatform/models"
)

// ErrTimedOut marks a request cancelled by the client-side abort timer. The
// portal shows it as its own condition, separate from a server-reported
// error.
var ErrTimedOut = errors.New("request timed out")

// fetches are cut off client-side after this long
const defaultRequestTimeout = 15 * time.Second

// Client talks to the admin API on behalf of the portal UI.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL, token string, opts ...func(*Client)) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		timeout: defaultRequestTimeout,
		http:    &http.Client{},
		logger:  log.With().Str("component", "adminClient").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithTimeout(timeout time.Duration) func(*Client) {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) func(*Client) {
	return func(c *Client) {
		c.http = httpClient
	}
}

// FetchProjects loads the full unfiltered project list.
func (c *Client) FetchProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/api/admin/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject submits a metadata update and returns the server's
// authoritative record.
func (c *Client) UpdateProject(ctx context.Context, id uuid.UUID, updates map[string]any) (models.Project, error) {
	body := map[string]any{
		"projectId": id.String(),
		"updates":   updates,
	}
	var project models.Project
	if err := c.do(ctx, http.MethodPatch, "/api/admin/projects", body, &project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// ReorderProjects submits the full ordered list; positions imply new order
// values.
func (c *Client) ReorderProjects(ctx context.Context, projects []models.Project) error {
	entries := make([]map[string]string, 0, len(projects))
	for _, p := range projects {
		entries = append(entries, map[string]string{"id": p.ID.String()})
	}
	body := map[string]any{"projects": entries}
	return c.do(ctx, http.MethodPut, "/api/admin/projects", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Warn().Str("path", path).Dur("timeout", c.timeout).Msg("request aborted by client timer")
			return fmt.Errorf("%s %s: %w", method, path, ErrTimedOut)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var serverErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&serverErr); decodeErr == nil && serverErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, serverErr.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
