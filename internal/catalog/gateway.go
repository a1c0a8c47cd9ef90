package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/mickytroxxy/bluegrass/pkg/errors"
)

const (
	defaultBaseURL             = "https://www.themealdb.com/api/json/v1/1"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

// Gateway is the upstream product-listing boundary. The source returns every
// match for a category in one call; pagination happens on our side.
type Gateway interface {
	FilterByCategory(ctx context.Context, category string) ([]Product, error)
}

// Client talks to the upstream meal catalog repurposed as the product source.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured upstream base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the upstream catalog client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client
}

// FilterByCategory lists every product the source holds for the category.
// An empty category result ("meals": null) is not an error.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]Product, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog client not configured")
	}
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	endpoint := fmt.Sprintf("%s/filter.php?c=%s", strings.TrimRight(c.baseURL, "/"), url.QueryEscape(trimmed))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute catalog request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "catalog request failed")
	}

	var apiResp struct {
		Meals []struct {
			ID       string `json:"idMeal"`
			Name     string `json:"strMeal"`
			Thumb    string `json:"strMealThumb"`
			Category string `json:"strCategory"`
		} `json:"meals"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}

	products := make([]Product, 0, len(apiResp.Meals))
	for _, meal := range apiResp.Meals {
		prodCategory := meal.Category
		if prodCategory == "" {
			prodCategory = trimmed
		}
		products = append(products, Product{
			ID:       meal.ID,
			Name:     meal.Name,
			ImageURL: meal.Thumb,
			Category: prodCategory,
			Price:    syntheticPrice(meal.ID),
		})
	}

	return products, nil
}
