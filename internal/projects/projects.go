// Package projects turns GitHub repositories into portfolio project cards.
// Every function here is pure: the same repositories and Options always
// yield the same projects.
package projects

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/kevinmichaelchen/showcase/internal/config"
	"github.com/kevinmichaelchen/showcase/internal/models"
)

// Options carries the operator settings the pipeline needs.
type Options struct {
	ExcludedRepos      []string
	FeaturedCount      int
	CustomCategories   map[string]string
	CustomDescriptions map[string]string
	CustomImages       map[string]string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ExcludedRepos:      cfg.ExcludedRepos,
		FeaturedCount:      cfg.FeaturedCount,
		CustomCategories:   cfg.CustomCategories,
		CustomDescriptions: cfg.CustomDescriptions,
		CustomImages:       cfg.CustomImages,
	}
}

// Keep reports whether a repository is eligible to become a project.
func Keep(repo models.Repo, excluded []string) bool {
	if repo.Fork || repo.Archived || repo.Disabled {
		return false
	}
	if slices.Contains(excluded, repo.Name) {
		return false
	}
	return repo.DescriptionText() != "" || len(repo.Topics) > 0
}

// Filter keeps eligible repositories in their original order, truncated to
// opts.FeaturedCount.
func Filter(repos []models.Repo, opts Options) []models.Repo {
	out := []models.Repo{}
	for _, r := range repos {
		if len(out) >= opts.FeaturedCount {
			break
		}
		if Keep(r, opts.ExcludedRepos) {
			out = append(out, r)
		}
	}
	return out
}

// Convert filters repos and maps each survivor to a Project.
func Convert(repos []models.Repo, opts Options) []models.Project {
	kept := Filter(repos, opts)
	out := make([]models.Project, 0, len(kept))
	for _, r := range kept {
		out = append(out, ToProject(r, opts))
	}
	return out
}

// ToProject maps one repository, applying the description, image and category overrides.
func ToProject(repo models.Repo, opts Options) models.Project {
	description := repo.DescriptionText()
	if d := opts.CustomDescriptions[repo.Name]; d != "" {
		description = d
	}
	image := opts.CustomImages[repo.Name]
	if image == "" {
		image = PlaceholderImage(repo)
	}
	return models.Project{
		ID:           repo.ID,
		Name:         repo.Name,
		Title:        FormatTitle(repo.Name),
		Description:  description,
		Image:        image,
		Technologies: Technologies(repo),
		GitHubURL:    repo.HTMLURL,
		LiveURL:      repo.HomepageText(),
		Category:     Categorize(repo, opts.CustomCategories),
		Stars:        repo.Stars,
		Forks:        repo.Forks,
		LastUpdated:  repo.UpdatedAt,
	}
}

var acronyms = map[string]*regexp.Regexp{
	"API": regexp.MustCompile(`\bApi\b`),
	"UI":  regexp.MustCompile(`\bUi\b`),
	"DB":  regexp.MustCompile(`\bDb\b`),
	"AI":  regexp.MustCompile(`\bAi\b`),
	"ML":  regexp.MustCompile(`\bMl\b`),
}

// FormatTitle turns a repository name into a display title:
// "my-api_project" becomes "My API Project".
func FormatTitle(name string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(name)

	// Upper-case the first rune of every word; the rest is left as written.
	runes := []rune(s)
	for i, r := range runes {
		if isWordRune(r) && (i == 0 || !isWordRune(runes[i-1])) {
			runes[i] = unicode.ToUpper(r)
		}
	}
	s = string(runes)

	for _, fix := range []string{"API", "UI", "DB", "AI", "ML"} {
		s = acronyms[fix].ReplaceAllString(s, fix)
	}
	return s
}

func isWordRune(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// PlaceholderImage points at the placeholder endpoint with the gradient of
// the repository's heuristic category. Overrides are ignored here.
func PlaceholderImage(repo models.Repo) string {
	gradient := Gradient(Categorize(repo, nil))
	return fmt.Sprintf("/api/placeholder/400/300?gradient=%s&text=%s", gradient, url.QueryEscape(repo.Name))
}
