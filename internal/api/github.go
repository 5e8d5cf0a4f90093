package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/gitsome-header/internal/models"
)

const (
	baseURL   = "https://api.github.com"
	perPage   = 100 // Max allowed by GitHub API
	userAgent = "gitsome-header/1.0"
)

// ErrNotFound is returned when GitHub answers 404 for a user
var ErrNotFound = errors.New("github user not found")

// APIError is a non-200 response from the GitHub API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Body)
}

// Client is a GitHub API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string // Optional: for authenticated requests (higher rate limits)
	logger     *log.Logger
}

// NewClient creates a new GitHub API client with a 30 second timeout
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		token:   token,
	}
}

// WithBaseURL points the client at another API root (GitHub Enterprise, tests)
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// WithLogger sets the logger used for request tracing
func (c *Client) WithLogger(logger *log.Logger) *Client {
	c.logger = logger
	return c
}

// FetchUserProfile fetches the profile summary for a login
func (c *Client) FetchUserProfile(ctx context.Context, login string) (*models.UserProfile, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, fmt.Errorf("login cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(login))
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var profile models.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	profile.FetchedAt = time.Now().UTC()

	return &profile, nil
}

// FetchUserRepositories fetches public repositories for a login, most
// recently pushed first. A limit <= 0 fetches every page.
func (c *Client) FetchUserRepositories(ctx context.Context, login string, limit int) ([]models.UserRepository, error) {
	var all []models.UserRepository
	next := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=pushed", c.baseURL, url.PathEscape(login), perPage)

	for next != "" {
		repos, nextURL, err := c.fetchRepoPage(ctx, next)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		for i := range repos {
			repos[i].GitHubLogin = login
			repos[i].FetchedAt = now
		}
		all = append(all, repos...)

		if limit > 0 && len(all) >= limit {
			return all[:limit], nil
		}
		next = nextURL
	}

	return all, nil
}

// fetchRepoPage fetches a single page of repositories and returns the next page URL
func (c *Client) fetchRepoPage(ctx context.Context, pageURL string) ([]models.UserRepository, string, error) {
	resp, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	var repos []models.UserRepository
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, "", fmt.Errorf("failed to decode repositories: %w", err)
	}

	return repos, parseNextLink(resp.Header.Get("Link")), nil
}

// get issues an authenticated GET and returns the response when the status is 200.
// The caller closes the body.
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Failed to create request", "url", endpoint, "error", err)
		}
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if c.logger != nil {
		c.logger.Info("GET", "endpoint", endpoint)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Request failed", "url", endpoint, "error", err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	// Log rate limit info
	if c.logger != nil {
		remaining := resp.Header.Get("X-RateLimit-Remaining")
		reset := resp.Header.Get("X-RateLimit-Reset")
		c.logger.Debug("Rate limit", "remaining", remaining, "reset", reset, "status", resp.StatusCode)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		if c.logger != nil {
			c.logger.Error("API error", "status", resp.StatusCode, "response", string(body))
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return resp, nil
}

var nextLinkRe = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// parseNextLink extracts the "next" URL from GitHub's Link header
// Example: <https://api.github.com/user/1/repos?page=2>; rel="next"
func parseNextLink(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}

	matches := nextLinkRe.FindStringSubmatch(linkHeader)
	if len(matches) >= 2 {
		return matches[1]
	}

	return ""
}

// ParseLogin accepts a bare login, "@login", or a github.com profile URL
func ParseLogin(input string) (string, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "@")

	if strings.Contains(s, "github.com") {
		if !strings.Contains(s, "://") {
			s = "https://" + s
		}
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("invalid profile URL %q: %w", input, err)
		}
		s = strings.Split(strings.Trim(u.Path, "/"), "/")[0]
	}

	if s == "" || strings.ContainsAny(s, "/ \t") {
		return "", fmt.Errorf("invalid GitHub login: %q", input)
	}
	return s, nil
}
