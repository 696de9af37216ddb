package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kevinmichaelchen/showcase/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "https://api.github.com"
	userAgent      = "Portfolio-Website"

	// GitHub rejects per_page values above this.
	maxPerPage = 100
)

// Client is a thin wrapper around the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.With().Str("component", "github").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListUserRepos returns up to max repositories owned by username, most
// recently updated first. Requests beyond 100 repos are paged.
func (c *Client) ListUserRepos(ctx context.Context, username string, max int) ([]models.Repo, error) {
	if username == "" {
		return nil, ErrNoUsername
	}
	if max <= 0 {
		return []models.Repo{}, nil
	}

	// per_page must stay fixed across pages: GitHub offsets page N by
	// (N-1)*per_page.
	perPage := min(max, maxPerPage)
	var all []models.Repo
	for page := 1; len(all) < max; page++ {
		q := url.Values{}
		q.Set("sort", "updated")
		q.Set("per_page", strconv.Itoa(perPage))
		q.Set("type", "owner")
		if page > 1 {
			q.Set("page", strconv.Itoa(page))
		}

		var repos []models.Repo
		if err := c.getJSON(ctx, "/users/"+url.PathEscape(username)+"/repos?"+q.Encode(), &repos); err != nil {
			return nil, err
		}
		all = append(all, repos...)
		c.log.Debug().Int("page", page).Int("received", len(repos)).Int("total", len(all)).Msg("fetched repository page")

		if len(repos) < perPage {
			break
		}
	}

	if len(all) > max {
		all = all[:max]
	}
	return all, nil
}

// GetRepo returns a single repository.
func (c *Client) GetRepo(ctx context.Context, owner, name string) (*models.Repo, error) {
	if owner == "" {
		return nil, ErrNoUsername
	}
	var repo models.Repo
	if err := c.getJSON(ctx, repoPath(owner, name), &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// ListContents lists a directory of the repository's default branch. An
// empty dir lists the root.
func (c *Client) ListContents(ctx context.Context, owner, name, dir string) ([]models.ContentEntry, error) {
	p := repoPath(owner, name) + "/contents"
	if dir = strings.Trim(dir, "/"); dir != "" {
		p += "/" + escapePath(dir)
	}
	var entries []models.ContentEntry
	if err := c.getJSON(ctx, p, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

type fileContent struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// GetReadme returns the decoded README.md of the repository.
func (c *Client) GetReadme(ctx context.Context, owner, name string) (string, error) {
	var file fileContent
	if err := c.getJSON(ctx, repoPath(owner, name)+"/contents/README.md", &file); err != nil {
		return "", err
	}
	if file.Encoding != "" && file.Encoding != "base64" {
		return "", fmt.Errorf("unsupported README encoding %q", file.Encoding)
	}
	// GitHub wraps base64 content at 60 columns.
	raw := strings.NewReplacer("\n", "", "\r", "").Replace(file.Content)
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decoding README: %w", err)
	}
	return string(decoded), nil
}

// --- internal ---

func repoPath(owner, name string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(name)
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("rate_remaining", resp.Header.Get("X-RateLimit-Remaining")).
		Msg("GitHub API call")

	if err := classify(resp, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

func classify(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		rl := &RateLimitError{}
		if reset, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
			rl.Reset = time.Unix(reset, 0)
		}
		return rl
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
}
