package projects

import (
	"testing"
	"time"

	"github.com/kevinmichaelchen/showcase/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func repo(name, desc, lang string, topics ...string) models.Repo {
	r := models.Repo{
		ID:      int64(len(name)),
		Name:    name,
		HTMLURL: "https://github.com/octocat/" + name,
		Topics:  topics,
	}
	if desc != "" {
		r.Description = ptr(desc)
	}
	if lang != "" {
		r.Language = ptr(lang)
	}
	if r.Topics == nil {
		r.Topics = []string{}
	}
	return r
}

func TestFilter(t *testing.T) {
	fork := repo("forked", "a fork", "Go")
	fork.Fork = true
	archived := repo("old", "archived thing", "Go")
	archived.Archived = true
	disabled := repo("off", "disabled thing", "Go")
	disabled.Disabled = true
	bare := repo("bare", "", "Go")
	excluded := repo("dotfiles", "my dotfiles", "Shell")
	tagged := repo("tagged", "", "", "cli")
	described := repo("described", "does things", "")

	all := []models.Repo{fork, archived, disabled, bare, excluded, tagged, described}
	opts := Options{ExcludedRepos: []string{"dotfiles"}, FeaturedCount: 10}

	got := Filter(all, opts)
	require.Len(t, got, 2)
	assert.Equal(t, "tagged", got[0].Name)
	assert.Equal(t, "described", got[1].Name)

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, got, Filter(got, opts))
	})

	t.Run("truncates to featured count preserving order", func(t *testing.T) {
		opts := Options{FeaturedCount: 1}
		got := Filter(all, opts)
		require.Len(t, got, 1)
		assert.Equal(t, "tagged", got[0].Name)
	})

	t.Run("zero featured count yields nothing", func(t *testing.T) {
		assert.Empty(t, Filter(all, Options{}))
	})

	t.Run("excluded name wins over everything", func(t *testing.T) {
		star := repo("dotfiles", "AI powered react website", "TypeScript", "react", "ai")
		star.Stars = 999
		assert.Empty(t, Filter([]models.Repo{star}, opts))
	})
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		repo models.Repo
		want string
	}{
		{"ai topic", repo("x", "", "", "machine-learning"), "AI/ML"},
		{"python model", repo("x", "trains a model", "Python"), "AI/ML"},
		{"mobile beats blockchain", repo("x", "", "", "blockchain", "mobile"), "Mobile"},
		{"kotlin language", repo("x", "", "Kotlin"), "Mobile"},
		{"solidity language", repo("x", "", "Solidity"), "Blockchain"},
		{"websocket", repo("x", "", "", "websocket"), "Real-time"},
		{"pandas", repo("x", "", "", "pandas"), "Data Science"},
		{"game", repo("x", "", "", "gamedev"), "Game Development"},
		{"docker", repo("x", "", "", "docker"), "DevOps"},
		{"frontend and backend topics", repo("x", "", "", "frontend", "backend"), "Full Stack"},
		{"react topic", repo("x", "", "", "react"), "Frontend"},
		{"go language", repo("x", "", "Go"), "Backend"},
		{"electron topic", repo("x", "", "", "electron"), "Desktop"},
		{"nothing matches", repo("x", "", "", "misc"), DefaultCategory},
		{"topics are case-insensitive", repo("x", "", "", "Docker"), "DevOps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.repo, nil))
		})
	}
}

func TestCategorizeOverride(t *testing.T) {
	r := repo("foo", "deep learning", "Python", "ai", "pytorch")
	assert.Equal(t, "Bar", Categorize(r, map[string]string{"foo": "Bar"}))
	assert.Equal(t, "AI/ML", Categorize(r, map[string]string{"other": "Bar"}))
}

func TestCategoryRuleOrder(t *testing.T) {
	assert.Equal(t, []string{
		"AI/ML", "Mobile", "Blockchain", "Real-time", "Data Science", "Game Development",
		"DevOps", "Full Stack", "Frontend", "Backend", "Desktop", "Web Development",
	}, Categories())
}

func TestGradient(t *testing.T) {
	assert.Equal(t, "from-cyan-200-to-blue-500", Gradient("Frontend"))
	assert.Equal(t, "from-blue-500-to-purple-500", Gradient(DefaultCategory))
	assert.Equal(t, "from-purple-500-to-blue-500", Gradient("Custom"))
}

func TestTechnologies(t *testing.T) {
	t.Run("language first then topics", func(t *testing.T) {
		got := Technologies(repo("x", "", "TypeScript", "react", "nextjs"))
		assert.Equal(t, []string{"TypeScript", "React", "Next.js"}, got)
	})

	t.Run("unknown language skipped", func(t *testing.T) {
		got := Technologies(repo("x", "", "Shell", "docker"))
		assert.Equal(t, []string{"Docker"}, got)
	})

	t.Run("aliases", func(t *testing.T) {
		got := Technologies(repo("x", "", "", "nodejs", "socketio"))
		assert.Equal(t, []string{"Node.js", "Socket.io"}, got)
	})

	t.Run("react implies typescript when tagged", func(t *testing.T) {
		got := Technologies(repo("x", "", "JavaScript", "react", "typescript"))
		assert.Equal(t, []string{"JavaScript", "React", "TypeScript"}, got)
	})

	t.Run("node implies express when tagged", func(t *testing.T) {
		got := Technologies(repo("x", "", "", "nodejs", "express"))
		assert.Equal(t, []string{"Node.js", "Express"}, got)
	})

	t.Run("capped and unique", func(t *testing.T) {
		got := Technologies(repo("x", "", "Go", "go", "docker", "kubernetes", "redis", "postgresql", "graphql", "aws", "docker"))
		assert.Len(t, got, MaxTechnologies)
		seen := map[string]bool{}
		for _, name := range got {
			assert.False(t, seen[name], "duplicate %s", name)
			seen[name] = true
		}
	})

	t.Run("no topics no language", func(t *testing.T) {
		got := Technologies(repo("x", "desc", ""))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestColor(t *testing.T) {
	assert.Equal(t, "bg-cyan-600 hover:bg-cyan-700", Color("Go"))
	assert.Equal(t, DefaultColor, Color("COBOL"))
	assert.True(t, Known("Next.js"))
	assert.False(t, Known("next.js"))
}

func TestFormatTitle(t *testing.T) {
	tests := map[string]string{
		"my-api_project":   "My API Project",
		"ui-kit":           "UI Kit",
		"ml_db-tools":      "ML DB Tools",
		"ai":               "AI",
		"apiary":           "Apiary",
		"portfolio":        "Portfolio",
		"already-Upper":    "Already Upper",
		"dotted.name-here": "Dotted.Name Here",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, FormatTitle(in))
		})
	}
}

func TestPlaceholderImage(t *testing.T) {
	r := repo("chat-app", "", "", "websocket")
	assert.Equal(t, "/api/placeholder/400/300?gradient=from-green-500-to-teal-500&text=chat-app", PlaceholderImage(r))
}

func TestConvert(t *testing.T) {
	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := repo("weather-api", "Forecast service", "Go", "api", "docker")
	r.Stars, r.Forks, r.UpdatedAt = 7, 2, updated
	r.Homepage = ptr("https://weather.example.com")

	opts := Options{FeaturedCount: 6}
	got := Convert([]models.Repo{r}, opts)
	require.Len(t, got, 1)
	p := got[0]
	assert.Equal(t, "Weather API", p.Title)
	assert.Equal(t, "Forecast service", p.Description)
	assert.Equal(t, "DevOps", p.Category)
	assert.Equal(t, []string{"Go", "Docker"}, p.Technologies)
	assert.Equal(t, "https://weather.example.com", p.LiveURL)
	assert.Equal(t, 7, p.Stars)
	assert.Equal(t, 2, p.Forks)
	assert.Equal(t, updated, p.LastUpdated)
	assert.Contains(t, p.Image, "gradient=from-gray-500-to-gray-700")

	t.Run("overrides", func(t *testing.T) {
		opts := Options{
			FeaturedCount:      6,
			CustomCategories:   map[string]string{"weather-api": "Backend"},
			CustomDescriptions: map[string]string{"weather-api": "Hand-written"},
			CustomImages:       map[string]string{"weather-api": "/img/weather.png"},
		}
		p := Convert([]models.Repo{r}, opts)[0]
		assert.Equal(t, "Backend", p.Category)
		assert.Equal(t, "Hand-written", p.Description)
		assert.Equal(t, "/img/weather.png", p.Image)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Convert([]models.Repo{r}, opts), Convert([]models.Repo{r}, opts))
	})
}
