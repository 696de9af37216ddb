package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, token string, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, token, WithLogger(zerolog.Nop()))
}

func TestListUserRepos(t *testing.T) {
	t.Run("query and headers", func(t *testing.T) {
		c := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/octocat/repos", r.URL.Path)
			assert.Equal(t, "updated", r.URL.Query().Get("sort"))
			assert.Equal(t, "12", r.URL.Query().Get("per_page"))
			assert.Equal(t, "owner", r.URL.Query().Get("type"))
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
			assert.Equal(t, "Portfolio-Website", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`[{"id":1,"name":"alpha","topics":["go"],"language":"Go","stargazers_count":3}]`))
		})

		repos, err := c.ListUserRepos(context.Background(), "octocat", 12)
		require.NoError(t, err)
		require.Len(t, repos, 1)
		assert.Equal(t, "alpha", repos[0].Name)
		assert.Equal(t, "Go", repos[0].LanguageText())
		assert.Equal(t, 3, repos[0].Stars)
	})

	t.Run("no token sends no authorization", func(t *testing.T) {
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`[]`))
		})
		repos, err := c.ListUserRepos(context.Background(), "octocat", 5)
		require.NoError(t, err)
		assert.Empty(t, repos)
	})

	t.Run("missing username sends nothing", func(t *testing.T) {
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})
		_, err := c.ListUserRepos(context.Background(), "", 5)
		assert.ErrorIs(t, err, ErrNoUsername)
	})

	t.Run("pages beyond 100", func(t *testing.T) {
		const total = 300
		var calls int
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			calls++
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
			if page == 0 {
				page = 1
			}
			start := min((page-1)*perPage, total)
			end := min(page*perPage, total)
			_, _ = w.Write([]byte("["))
			for i := start; i < end; i++ {
				if i > start {
					_, _ = w.Write([]byte(","))
				}
				fmt.Fprintf(w, `{"id":%d,"name":"repo-%d"}`, i+1, i)
			}
			_, _ = w.Write([]byte("]"))
		})

		repos, err := c.ListUserRepos(context.Background(), "octocat", 150)
		require.NoError(t, err)
		require.Len(t, repos, 150)
		assert.Equal(t, 2, calls)

		seen := make(map[int64]bool, len(repos))
		for i, r := range repos {
			assert.False(t, seen[r.ID], "duplicate repository %s", r.Name)
			seen[r.ID] = true
			assert.Equal(t, fmt.Sprintf("repo-%d", i), r.Name)
		}
		assert.Equal(t, "repo-149", repos[149].Name)
	})

	t.Run("short page stops paging", func(t *testing.T) {
		var calls int
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			calls++
			_, _ = w.Write([]byte(`[{"id":1,"name":"only"}]`))
		})
		repos, err := c.ListUserRepos(context.Background(), "octocat", 250)
		require.NoError(t, err)
		assert.Len(t, repos, 1)
		assert.Equal(t, 1, calls)
	})
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    error
		kind    string
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized, "unauthorized", "Invalid GitHub token"},
		{"rate limited", http.StatusForbidden, ErrRateLimited, "rate_limited", "GitHub API rate limit exceeded. Please try again later."},
		{"not found", http.StatusNotFound, ErrNotFound, "not_found", "GitHub user or repository not found"},
		{"server error", http.StatusInternalServerError, nil, "api", "GitHub API error: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-RateLimit-Reset", "1700000000")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			})

			_, err := c.ListUserRepos(context.Background(), "octocat", 5)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			} else {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, tt.status, apiErr.StatusCode)
			}
			assert.Equal(t, tt.kind, Kind(err))
			assert.Equal(t, tt.message, Message(err))
		})
	}
}

func TestRateLimitReset(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Reset", "1700000000")
		w.WriteHeader(http.StatusForbidden)
	})
	_, err := c.GetRepo(context.Background(), "octocat", "alpha")

	var rl *RateLimitError
	require.True(t, errors.As(err, &rl))
	assert.Equal(t, int64(1700000000), rl.Reset.Unix())
	assert.Contains(t, err.Error(), "resets at")
}

func TestGetReadme(t *testing.T) {
	readme := "# Alpha\n\nA small project with a fairly long description line to force wrapping.\n"
	encoded := base64.StdEncoding.EncodeToString([]byte(readme))
	wrapped := encoded[:20] + "\n" + encoded[20:]

	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/alpha/contents/README.md", r.URL.Path)
		fmt.Fprintf(w, `{"content":%q,"encoding":"base64"}`, wrapped)
	})

	got, err := c.GetReadme(context.Background(), "octocat", "alpha")
	require.NoError(t, err)
	assert.Equal(t, readme, got)
}

func TestListContents(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octocat/alpha/contents":
			_, _ = w.Write([]byte(`[{"name":"logo.png","path":"logo.png","type":"file","download_url":"https://raw/logo.png"}]`))
		case "/repos/octocat/alpha/contents/docs/img":
			_, _ = w.Write([]byte(`[{"name":"a.jpg","path":"docs/img/a.jpg","type":"file"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	root, err := c.ListContents(context.Background(), "octocat", "alpha", "")
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, "https://raw/logo.png", root[0].DownloadURL)

	nested, err := c.ListContents(context.Background(), "octocat", "alpha", "/docs/img/")
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.Equal(t, "docs/img/a.jpg", nested[0].Path)

	_, err = c.ListContents(context.Background(), "octocat", "alpha", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKindTransport(t *testing.T) {
	err := fmt.Errorf("executing request: %w", errors.New("connection refused"))
	assert.Equal(t, "transport", Kind(err))
	assert.Equal(t, "Failed to load projects. Please try again.", Message(err))
	assert.Equal(t, "", Message(nil))
}
