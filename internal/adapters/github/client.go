package github

// Package github is a thin client for the release and workflow-run lookups
// behind the releases page. Callers cache responses; this client performs
// one uncached API call per invocation.

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/orbitalhq/console-api/config"
)

// Client calls the GitHub REST API with a static token source.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client from configuration. The oauth2 transport injects
// the bearer token on every request.
func NewClient(cfg config.GitHubConfig) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = 15 * time.Second

	return &Client{
		baseURL:    cfg.APIBaseURL,
		httpClient: httpClient,
	}
}

// LatestRelease returns the raw JSON for the most recent release of
// owner/name, or nil when the repository has no releases.
func (c *Client) LatestRelease(ctx context.Context, repo string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/repos/%s/releases/latest", repo))
}

// LatestWorkflowRun returns the raw JSON listing of the most recent workflow
// run for owner/name.
func (c *Client) LatestWorkflowRun(ctx context.Context, repo string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/repos/%s/actions/runs?per_page=1", repo))
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("github returned %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read github response: %w", err)
	}
	return body, nil
}
