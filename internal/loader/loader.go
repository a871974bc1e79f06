// Package loader reads sales, products and stores for one user from the
// retail API and forwards new sales to it.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-retail-sales/internal/model"
)

// ErrUnauthorized is returned when the API rejects the session's token
var ErrUnauthorized = errors.New("session rejected by api")

// Session is the authenticated user every call is scoped to
type Session struct {
	UserID string
	Token  string
}

// Client is an HTTP+JSON client for the retail API
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the API at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// FetchSales returns the user's sales with product and store resolved
func (c *Client) FetchSales(ctx context.Context, s Session) ([]model.SaleRecord, error) {
	return getList[model.SaleRecord](ctx, c, s, "sales")
}

// FetchProducts returns the user's products
func (c *Client) FetchProducts(ctx context.Context, s Session) ([]model.Product, error) {
	return getList[model.Product](ctx, c, s, "product")
}

// FetchStores returns the user's stores
func (c *Client) FetchStores(ctx context.Context, s Session) ([]model.Store, error) {
	return getList[model.Store](ctx, c, s, "store")
}

// AddSale submits a new sale on behalf of the session user
func (c *Client) AddSale(ctx context.Context, s Session, in model.SaleInput) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("error marshalling sale: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/api/sales/add", s, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling sales api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("sales api: %w: %s", ErrUnauthorized, apiError(respBody))
		}
		return fmt.Errorf("sales api returned status %d: %s", resp.StatusCode, apiError(respBody))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, s Session, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	return req, nil
}

// getList issues GET {base}/api/{resource}/get/{user}. A 401 wraps
// ErrUnauthorized; every other failure is reported the same way.
func getList[T any](ctx context.Context, c *Client, s Session, resource string) ([]T, error) {
	endpoint := fmt.Sprintf("%s/api/%s/get/%s", c.baseURL, resource, url.PathEscape(s.UserID))

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, s, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", resource, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading %s response: %w", resource, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%s api: %w: %s", resource, ErrUnauthorized, apiError(body))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s api returned status %d: %s", resource, resp.StatusCode, apiError(body))
	}

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("error unmarshalling %s response: %w", resource, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// apiError extracts {"error": "..."} from an API body, falling back to the raw text
func apiError(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
