package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kevinmichaelchen/showcase/internal/config"
	"github.com/kevinmichaelchen/showcase/internal/github"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, gh http.HandlerFunc) *Server {
	t.Helper()
	api := httptest.NewServer(gh)
	t.Cleanup(api.Close)

	cfg := &config.Config{
		GitHubUsername: "octocat",
		GitHubAPIURL:   api.URL,
		MaxRepos:       12,
		FeaturedCount:  6,
	}
	return New(cfg, github.NewClient(api.URL, "", github.WithLogger(zerolog.Nop())))
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestListProjects(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
		  {"id":1,"name":"api-gateway","description":"Routes traffic","language":"Go","topics":["microservice"]},
		  {"id":2,"name":"old","description":"Old","archived":true}
		]`))
	})

	rec := get(t, s, "/api/projects")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ProjectsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Projects, 1)
	assert.Equal(t, "API Gateway", body.Projects[0].Title)
	assert.Equal(t, "Backend", body.Projects[0].Category)
}

func TestListProjectsErrors(t *testing.T) {
	tests := []struct {
		name     string
		upstream int
		want     int
		kind     string
	}{
		{"unauthorized", http.StatusUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"rate limited", http.StatusForbidden, http.StatusTooManyRequests, "rate_limited"},
		{"not found", http.StatusNotFound, http.StatusNotFound, "not_found"},
		{"upstream failure", http.StatusBadGateway, http.StatusBadGateway, "api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.upstream)
			})

			rec := get(t, s, "/api/projects")
			assert.Equal(t, tt.want, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestListProjectsNotConfigured(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream request expected")
	})
	s.cfg.GitHubUsername = ""

	rec := get(t, s, "/api/projects")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "GitHub username not configured")
}

func TestGetProject(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/octocat/api-gateway" {
			_, _ = w.Write([]byte(`{"id":1,"name":"api-gateway","description":"Routes traffic","topics":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	rec := get(t, s, "/api/projects/api-gateway")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "API Gateway", body["title"])
	assert.Equal(t, "", body["readme"])
	assert.Equal(t, []any{}, body["images"])
}

func TestTechnologiesAndCategories(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := get(t, s, "/api/technologies")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Next.js"`)

	rec = get(t, s, "/api/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Web Development"`)
}

func TestPlaceholder(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := get(t, s, "/api/placeholder/400/300?gradient=from-green-500-to-teal-500&text=chat%20%3Capp%3E")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	svg := rec.Body.String()
	assert.Contains(t, svg, `width="400" height="300"`)
	assert.Contains(t, svg, "#22c55e")
	assert.Contains(t, svg, "#14b8a6")
	assert.Contains(t, svg, "chat &lt;app&gt;")

	rec = get(t, s, "/api/placeholder/0/300")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = get(t, s, "/api/placeholder/wide/300")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseGradient(t *testing.T) {
	from, to := ParseGradient("from-cyan-200-to-blue-500")
	assert.Equal(t, "#a5f3fc", from)
	assert.Equal(t, "#3b82f6", to)

	from, to = ParseGradient("sunset")
	assert.Equal(t, defaultFrom, from)
	assert.Equal(t, defaultTo, to)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
