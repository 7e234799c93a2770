// Package api is the typed client for the Yajna Funds REST API. Reads are
// cached by request key and de-duplicated in flight, mirroring how the web
// front end consumes the API; mutations invalidate the affected keys.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/yajna-funds/server/internal/domain"
)

// Error is a non-2xx API response. Fields carries the server's field-level
// validation details when present.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// NotFound reports whether err is a 404 API error.
func NotFound(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == http.StatusNotFound
}

// Client talks to the server. Concurrent use is safe.
type Client struct {
	baseURL string
	http    *http.Client

	group singleflight.Group
	mu    sync.Mutex
	cache map[string][]byte
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		cache:   make(map[string][]byte),
	}
}

// get fetches path with caching: a cached body is returned immediately, and
// concurrent fetches for the same path collapse into one request.
func (c *Client) get(ctx context.Context, path string, dest any) error {
	c.mu.Lock()
	cached, ok := c.cache[path]
	c.mu.Unlock()
	if ok {
		return json.Unmarshal(cached, dest)
	}

	v, err, _ := c.group.Do(path, func() (any, error) {
		body, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cache[path] = body
		c.mu.Unlock()
		return body, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), dest)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var parsed struct {
			Message string       `json:"message"`
			Errors  []FieldError `json:"errors"`
		}
		if json.Unmarshal(raw, &parsed) == nil && parsed.Message != "" {
			apiErr.Message = parsed.Message
			apiErr.Fields = parsed.Errors
		}
		return nil, apiErr
	}
	return raw, nil
}

// Invalidate drops cached responses whose key starts with any given prefix.
func (c *Client) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.cache {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				delete(c.cache, key)
				break
			}
		}
	}
}

func (c *Client) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	var out []domain.Campaign
	err := c.get(ctx, "/api/campaigns", &out)
	return out, err
}

func (c *Client) Campaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	var out domain.Campaign
	if err := c.get(ctx, "/api/campaigns/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CampaignContributions(ctx context.Context, id int64) ([]domain.Contribution, error) {
	var out []domain.Contribution
	err := c.get(ctx, "/api/campaigns/"+strconv.FormatInt(id, 10)+"/contributions", &out)
	return out, err
}

func (c *Client) User(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/api/users/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserByExternalRef(ctx context.Context, ref string) (*domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/api/users/external/"+ref, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserContributions(ctx context.Context, id int64) ([]domain.Contribution, error) {
	var out []domain.Contribution
	err := c.get(ctx, "/api/users/"+strconv.FormatInt(id, 10)+"/contributions", &out)
	return out, err
}

func (c *Client) UserCampaigns(ctx context.Context, id int64) ([]domain.Campaign, error) {
	var out []domain.Campaign
	err := c.get(ctx, "/api/users/"+strconv.FormatInt(id, 10)+"/campaigns", &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/users", in)
	if err != nil {
		return nil, err
	}
	c.Invalidate("/api/users")
	var out domain.User
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	raw, err := c.do(ctx, http.MethodPatch, "/api/users/"+strconv.FormatInt(id, 10), upd)
	if err != nil {
		return nil, err
	}
	c.Invalidate("/api/users")
	var out domain.User
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCampaign(ctx context.Context, in domain.NewCampaign) (*domain.Campaign, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/campaigns", in)
	if err != nil {
		return nil, err
	}
	c.Invalidate("/api/campaigns", "/api/users")
	var out domain.Campaign
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateContribution records a contribution; the campaign cache is dropped
// because its running total just changed.
func (c *Client) CreateContribution(ctx context.Context, in domain.NewContribution) (*domain.Contribution, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/contributions", in)
	if err != nil {
		return nil, err
	}
	c.Invalidate("/api/campaigns", "/api/users")
	var out domain.Contribution
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
