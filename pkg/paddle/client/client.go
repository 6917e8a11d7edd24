// Package client is a thin typed wrapper around the Paddle REST API: bearer
// auth, fixed request timeout, cursor pagination. No retries; a failed call
// surfaces as an error and the caller's next cycle is the retry.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

const (
	// DefaultPerPage is the page size used when the caller passes 0.
	DefaultPerPage = 200

	defaultBaseURL    = "https://api.paddle.com"
	defaultAPIVersion = "1"
	defaultTimeout    = 30 * time.Second
)

// Config holds client settings. APIKey is required; everything else has a
// default.
type Config struct {
	BaseURL    string
	APIKey     string
	APIVersion string
	Timeout    time.Duration
}

// Client calls the Paddle API. Safe for concurrent use.
type Client struct {
	baseURL    string
	auth       string
	apiVersion string
	httpClient *http.Client
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		auth:       "Bearer " + cfg.APIKey,
		apiVersion: apiVersion,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Page is one page of a cursor-paginated listing.
type Page[T any] struct {
	Items      []T
	NextCursor string
	HasMore    bool
}

type listResponse[T any] struct {
	Data []T `json:"data"`
	Meta struct {
		Pagination struct {
			PerPage        int    `json:"per_page"`
			Next           string `json:"next"`
			HasMore        bool   `json:"has_more"`
			EstimatedTotal int    `json:"estimated_total"`
		} `json:"pagination"`
	} `json:"meta"`
}

func getPaginated[T any](ctx context.Context, c *Client, path, cursor string, perPage int) (Page[T], error) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	reqURL := fmt.Sprintf("%s/%s?per_page=%d&order_by=%s", c.baseURL, path, perPage, url.QueryEscape("id[ASC]"))
	if cursor != "" {
		reqURL += "&after=" + url.QueryEscape(cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Page[T]{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Paddle-Api-Version", c.apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page[T]{}, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Paddle API request failed",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return Page[T]{}, fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page[T]{}, fmt.Errorf("read %s response: %w", path, err)
	}
	var listed listResponse[T]
	if err := go_json.Unmarshal(body, &listed); err != nil {
		return Page[T]{}, fmt.Errorf("decode %s response: %w", path, err)
	}

	// The next cursor is embedded in meta.pagination.next as an ?after= query
	// parameter of the follow-up URL.
	next := listed.Meta.Pagination.Next
	pos := strings.Index(next, "after=")
	if pos < 0 {
		return Page[T]{Items: listed.Data}, nil
	}
	nextCursor := next[pos+len("after="):]
	if amp := strings.IndexByte(nextCursor, '&'); amp >= 0 {
		nextCursor = nextCursor[:amp]
	}
	return Page[T]{
		Items:      listed.Data,
		NextCursor: nextCursor,
		HasMore:    listed.Meta.Pagination.HasMore,
	}, nil
}

func getAll[T any](ctx context.Context, c *Client, path string, perPage int) ([]T, error) {
	var all []T
	cursor := ""
	for {
		page, err := getPaginated[T](ctx, c, path, cursor, perPage)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if !page.HasMore || page.NextCursor == "" {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

// ListNotificationSettings fetches every notification setting, following
// pagination to the end.
func (c *Client) ListNotificationSettings(ctx context.Context) ([]types.NotificationSetting, error) {
	return getAll[types.NotificationSetting](ctx, c, "notification-settings", DefaultPerPage)
}

// ListEvents fetches one page of the event history. Items are returned as raw
// JSON so callers can feed them through the dispatcher unmodified.
func (c *Client) ListEvents(ctx context.Context, cursor string, perPage int) (Page[go_json.RawMessage], error) {
	return getPaginated[go_json.RawMessage](ctx, c, "events", cursor, perPage)
}

// ListPrices fetches one page of prices.
func (c *Client) ListPrices(ctx context.Context, cursor string, perPage int) (Page[types.Price], error) {
	return getPaginated[types.Price](ctx, c, "prices", cursor, perPage)
}

// ListProducts fetches one page of products.
func (c *Client) ListProducts(ctx context.Context, cursor string, perPage int) (Page[types.Product], error) {
	return getPaginated[types.Product](ctx, c, "products", cursor, perPage)
}
