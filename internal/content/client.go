package content

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

// Querier runs a content query and decodes its result into dest.
// This interface is implemented by *Client and can be used for testing.
type Querier interface {
	Query(ctx context.Context, q Query, dest any) error
}

// Ensure Client implements Querier at compile time.
var _ Querier = (*Client)(nil)

// Client talks to the content provider's query HTTP API.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	dataset    string
	apiVersion string
	token      string
	userAgent  string
}

// Options configure a Client.
type Options struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	Token      string
	APIHost    string // overrides the host derived from ProjectID
}

const (
	defaultDataset    = "production"
	defaultAPIVersion = "2025-01-13"
	defaultUserAgent  = "storefront/0.1"
	requestTimeout    = 10 * time.Second
)

// NewClient builds a Client for the given project.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts)
	if err != nil {
		return nil, err
	}
	dataset := strings.TrimSpace(opts.Dataset)
	if dataset == "" {
		dataset = defaultDataset
	}
	version := strings.TrimPrefix(strings.TrimSpace(opts.APIVersion), "v")
	if version == "" {
		version = defaultAPIVersion
	}
	return &Client{
		baseURL:    base,
		http:       &http.Client{Timeout: requestTimeout},
		dataset:    dataset,
		apiVersion: version,
		token:      strings.TrimSpace(opts.Token),
		userAgent:  defaultUserAgent,
	}, nil
}

// Query runs q against the dataset and decodes the "result" member of the
// response into dest.
func (c *Client) Query(ctx context.Context, q Query, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	groq, err := q.GROQ()
	if err != nil {
		return err
	}
	values := url.Values{}
	values.Set("query", groq)
	for name, value := range q.Params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}
	rel := &url.URL{
		Path:     fmt.Sprintf("/v%s/data/query/%s", c.apiVersion, c.dataset),
		RawQuery: values.Encode(),
	}

	var payload queryResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return err
	}
	if dest == nil || len(payload.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload.Result, dest); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return apiError(rel.Path, resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(path string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload errorResponse
	if json.Unmarshal(body, &payload) == nil {
		if desc := strings.TrimSpace(payload.Error.Description); desc != "" {
			return fmt.Errorf("api %s returned status %d: %s", path, resp.StatusCode, desc)
		}
	}
	return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
}

func parseBaseURL(opts Options) (*url.URL, error) {
	raw := strings.TrimSpace(opts.APIHost)
	if raw == "" {
		project := strings.TrimSpace(opts.ProjectID)
		if project == "" {
			return nil, fmt.Errorf("project id is required when api host is not set")
		}
		host := "api.sanity.io"
		if opts.UseCDN {
			host = "apicdn.sanity.io"
		}
		raw = fmt.Sprintf("https://%s.%s", project, host)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api host %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
