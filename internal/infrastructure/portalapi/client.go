package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobalert-web/internal/domain/admin"
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/domain/notification"
	"jobalert-web/internal/domain/user"
)

var ErrNotConfigured = errors.New("portal api client not configured")

type Client struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out loginResponse
	in := user.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", nil, in, &out); err != nil {
		return "", err
	}
	tok := strings.TrimSpace(out.AccessToken)
	if tok == "" {
		return "", &APIError{Status: http.StatusBadGateway, Detail: "", Endpoint: "/api/auth/login"}
	}
	return tok, nil
}

func (c *Client) Register(ctx context.Context, in user.RegisterInput) (user.User, error) {
	var out user.User
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", nil, in, &out); err != nil {
		return user.User{}, err
	}
	return out, nil
}

func (c *Client) Me(ctx context.Context, token string) (user.User, error) {
	var out user.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, nil, &out); err != nil {
		return user.User{}, err
	}
	return out, nil
}

func (c *Client) ListJobs(ctx context.Context, f job.Filters) ([]job.Job, error) {
	var out []job.Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs", "", f.Values(), nil, &out); err != nil {
		return nil, err
	}
	return nonNilJobs(out), nil
}

func (c *Client) GetJob(ctx context.Context, id string) (job.Job, error) {
	var out job.Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+url.PathEscape(id), "", nil, nil, &out); err != nil {
		return job.Job{}, err
	}
	return out, nil
}

func (c *Client) CreateJob(ctx context.Context, token string, in job.CreateInput) (job.Job, error) {
	var out job.Job
	if err := c.do(ctx, http.MethodPost, "/api/jobs", token, nil, in, &out); err != nil {
		return job.Job{}, err
	}
	return out, nil
}

func (c *Client) DeleteJob(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/jobs/"+url.PathEscape(id), token, nil, nil, nil)
}

func (c *Client) ApplyForJob(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodPost, "/api/jobs/"+url.PathEscape(id)+"/apply", token, nil, nil, nil)
}

func (c *Client) SearchJobs(ctx context.Context, query string, f job.Filters) ([]job.Job, error) {
	q := f.Values()
	q.Set("q", strings.TrimSpace(query))
	var out []job.Job
	if err := c.do(ctx, http.MethodGet, "/api/search/jobs", "", q, nil, &out); err != nil {
		return nil, err
	}
	return nonNilJobs(out), nil
}

func (c *Client) Notifications(ctx context.Context, token string) ([]notification.Notification, error) {
	var out []notification.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", token, nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []notification.Notification{}
	}
	return out, nil
}

func (c *Client) AdminDashboard(ctx context.Context, token string) (admin.Snapshot, error) {
	var out admin.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/admin/dashboard", token, nil, nil, &out); err != nil {
		return admin.Snapshot{}, err
	}
	return out, nil
}

// SeedData returns the API's confirmation message.
func (c *Client) SeedData(ctx context.Context, token string) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/seed-data", token, nil, nil, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Message), nil
}

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body any, out any) error {
	if c == nil || c.client == nil {
		return ErrNotConfigured
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("portalapi: encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return fmt.Errorf("portalapi: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("portalapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		apiErr := newAPIError(resp.StatusCode, path, rb)
		if c.logger != nil {
			c.logger.Printf("[PortalAPI] %s %s status=%d detail=%q", method, path, resp.StatusCode, apiErr.Detail)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("portalapi: decode %s %s: %w", method, path, err)
	}
	return nil
}

func nonNilJobs(in []job.Job) []job.Job {
	if in == nil {
		return []job.Job{}
	}
	return in
}
