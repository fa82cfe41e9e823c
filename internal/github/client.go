package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goliatone/go-errors"
)

// BaseURL is the GitHub REST API root. Overridable in tests.
var BaseURL = "https://api.github.com"

// ErrNoProfile means the username does not exist on GitHub
var ErrNoProfile = errors.New("No Github profile found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("github_no_profile")

// Repo is the subset of a GitHub repository we surface on profiles.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
	Language    string `json:"language"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a GitHub API client. The token is optional, unauthenticated
// requests work but get a much lower rate limit.
func NewClient(token string) *Client {
	return &Client{
		baseURL: BaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// LatestRepos returns the user's five most recently created public repos.
func (c *Client) LatestRepos(ctx context.Context, username string) ([]Repo, error) {
	params := url.Values{}
	params.Set("per_page", "5")
	params.Set("sort", "created:desc")

	body, status, err := c.get(ctx, fmt.Sprintf("/users/%s/repos", url.PathEscape(username)), params)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		return nil, ErrNoProfile
	}

	if status != http.StatusOK {
		return nil, errors.New(
			fmt.Sprintf("github api error: status %d", status),
			errors.CategoryOperation,
		).WithMetadata(map[string]any{"username": username, "status": status})
	}

	var repos []Repo
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to decode github response")
	}

	return repos, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, int, error) {
	fullURL := c.baseURL + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "failed to build github request")
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devconnect")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryOperation, "github request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryOperation, "failed to read github response")
	}

	return body, resp.StatusCode, nil
}
