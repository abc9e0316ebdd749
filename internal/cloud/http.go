package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// HTTPClient implements Client against a control-plane HTTP API:
//
//	GET {base}/resources/{id}           -> Resource JSON (404 = not found)
//	GET {base}/resources?filter={f}     -> array of Resource JSON
//
// InvokeHTTP hits arbitrary URLs and is used for live functional probes.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient with the default timeout.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: defaultTimeout},
	}
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: defaultTimeout}
}

// GetResource fetches one resource by identifier.
func (c *HTTPClient) GetResource(ctx context.Context, id string) (*Resource, error) {
	u := c.BaseURL + "/resources/" + escapePath(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", id, err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", id, resp.StatusCode)
	}

	var res Resource
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return &res, nil
}

// ListResources fetches resources matching a collaborator-defined filter.
func (c *HTTPClient) ListResources(ctx context.Context, filter string) ([]Resource, error) {
	u := c.BaseURL + "/resources"
	if filter != "" {
		u += "?filter=" + url.QueryEscape(filter)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list resources: unexpected status %d", resp.StatusCode)
	}

	var out []Resource
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode resource list: %w", err)
	}
	return out, nil
}

// InvokeHTTP performs one live request and returns the status code and body.
func (c *HTTPClient) InvokeHTTP(ctx context.Context, rawURL, method string, headers map[string]string, body string) (int, string, error) {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, rdr)
	if err != nil {
		return 0, "", fmt.Errorf("build request %s %s: %w", method, rawURL, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("invoke %s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("read response from %s: %w", rawURL, err)
	}
	return resp.StatusCode, string(data), nil
}

// escapePath keeps the id's slashes as segment separators while escaping
// everything else.
func escapePath(id string) string {
	parts := strings.Split(id, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
