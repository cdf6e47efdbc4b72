package forkify

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
)

// RecipeService defines the Forkify API operations the client relies on.
// This interface is implemented by *Client and can be used for testing.
type RecipeService interface {
	FetchRecipe(ctx context.Context, id string) (*Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]RecipeSummary, error)
	CreateRecipe(ctx context.Context, recipe NewRecipe) (*Recipe, error)
}

// Ensure Client implements RecipeService at compile time.
var _ RecipeService = (*Client)(nil)

// Client talks to the Forkify HTTP API.
type Client struct {
	baseURL   *url.URL
	key       string
	http      *http.Client
	userAgent string
}

const (
	DefaultAPIURL    = "https://forkify-api.herokuapp.com/api/v2/recipes"
	defaultUserAgent = "forkify/0.1"
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 4 << 20
)

// NewClient builds a Client for the recipes endpoint at apiURL. The key is
// attached to every request as the "key" query parameter. A zero timeout
// uses the default of ten seconds.
func NewClient(apiURL, key string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		key:     strings.TrimSpace(key),
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchRecipe retrieves a single recipe by id.
func (c *Client) FetchRecipe(ctx context.Context, id string) (*Recipe, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("recipe id required")
	}
	var payload recipeData
	if err := c.do(ctx, http.MethodGet, c.endpoint(id, nil), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Recipe, nil
}

// SearchRecipes retrieves every recipe matching query. The API does not page
// its results; slicing into pages happens client side.
func (c *Client) SearchRecipes(ctx context.Context, query string) ([]RecipeSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("search", query)
	var payload searchData
	if err := c.do(ctx, http.MethodGet, c.endpoint("", values), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Recipes, nil
}

// CreateRecipe uploads a user recipe and returns the stored version, which
// carries the id and key assigned by the API.
func (c *Client) CreateRecipe(ctx context.Context, recipe NewRecipe) (*Recipe, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload recipeData
	if err := c.do(ctx, http.MethodPost, c.endpoint("", nil), recipe, &payload); err != nil {
		return nil, err
	}
	return &payload.Recipe, nil
}

func (c *Client) endpoint(id string, values url.Values) *url.URL {
	u := *c.baseURL
	if id != "" {
		u.Path = u.Path + "/" + id
	}
	if values == nil {
		values = url.Values{}
	}
	if c.key != "" {
		values.Set("key", c.key)
	}
	u.RawQuery = values.Encode()
	return &u
}

func (c *Client) do(ctx context.Context, method string, reqURL *url.URL, body any, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrNetwork, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	op := method + " " + reqURL.Path
	if resp.StatusCode >= 400 {
		kind := ErrNetwork
		if resp.StatusCode == http.StatusNotFound {
			kind = ErrNotFound
		}
		return &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     env.Status,
			Message:    env.Message,
			kind:       kind,
		}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if env.failed() {
		return &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     env.Status,
			Message:    env.Message,
			kind:       ErrApplication,
		}
	}
	if dest == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
