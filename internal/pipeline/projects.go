package pipeline

import (
	"context"
	"path"
	"slices"
	"strings"

	"github.com/kevinmichaelchen/showcase/internal/config"
	"github.com/kevinmichaelchen/showcase/internal/github"
	"github.com/kevinmichaelchen/showcase/internal/models"
	"github.com/kevinmichaelchen/showcase/internal/projects"
	"github.com/rs/zerolog/log"
	"github.com/russross/blackfriday/v2"
	"golang.org/x/sync/errgroup"
)

// Source is the subset of the GitHub client the pipeline needs.
type Source interface {
	ListUserRepos(ctx context.Context, username string, max int) ([]models.Repo, error)
	GetRepo(ctx context.Context, owner, name string) (*models.Repo, error)
	GetReadme(ctx context.Context, owner, name string) (string, error)
	ListContents(ctx context.Context, owner, name, dir string) ([]models.ContentEntry, error)
}

// Projects fetches the configured user's repositories and converts them.
// On error the project list is nil.
func Projects(ctx context.Context, src Source, cfg *config.Config) ([]models.Project, error) {
	logger := log.With().Str("component", "pipeline").Str("user", cfg.GitHubUsername).Logger()

	if cfg.GitHubUsername == "" {
		logger.Error().Err(github.ErrNoUsername).Msg("Error fetching GitHub projects")
		return nil, github.ErrNoUsername
	}

	repos, err := src.ListUserRepos(ctx, cfg.GitHubUsername, cfg.MaxRepos)
	if err != nil {
		logger.Error().Err(err).Str("kind", github.Kind(err)).Msg("Error fetching GitHub projects")
		return nil, err
	}

	out := projects.Convert(repos, projects.OptionsFromConfig(cfg))
	logger.Debug().Int("fetched", len(repos)).Int("projects", len(out)).Msg("converted repositories")
	return out, nil
}

// imageDirs are the directories, besides the root, searched for screenshots.
var imageDirs = []string{"images", "screenshots", "assets", "docs"}

var imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// Detail builds the detail page for one repository. The README and the
// image listing are fetched together; failures of either degrade to an empty
// value. Repositories that would never be shown as projects are reported as
// not found.
func Detail(ctx context.Context, src Source, cfg *config.Config, name string) (*models.ProjectDetail, error) {
	logger := log.With().Str("component", "pipeline").Str("repo", name).Logger()

	if cfg.GitHubUsername == "" {
		return nil, github.ErrNoUsername
	}

	repo, err := src.GetRepo(ctx, cfg.GitHubUsername, name)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching repository detail")
		return nil, err
	}
	if !projects.Keep(*repo, cfg.ExcludedRepos) {
		return nil, github.ErrNotFound
	}

	var (
		readme string
		images []string
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := src.GetReadme(gCtx, cfg.GitHubUsername, name)
		if err != nil {
			logger.Warn().Err(err).Msg("README unavailable")
			return nil
		}
		readme = text
		return nil
	})
	g.Go(func() error {
		images = listImages(gCtx, src, cfg.GitHubUsername, name)
		return nil
	})
	_ = g.Wait()

	opts := projects.OptionsFromConfig(cfg)
	detail := &models.ProjectDetail{
		Project:    projects.ToProject(*repo, opts),
		Topics:     repo.Topics,
		Language:   repo.LanguageText(),
		CreatedAt:  repo.CreatedAt,
		Readme:     readme,
		ReadmeHTML: RenderMarkdown(readme),
		Images:     images,
	}
	if detail.Topics == nil {
		detail.Topics = []string{}
	}
	return detail, nil
}

func listImages(ctx context.Context, src Source, owner, name string) []string {
	logger := log.With().Str("component", "pipeline").Str("repo", name).Logger()

	root, err := src.ListContents(ctx, owner, name, "")
	if err != nil {
		logger.Warn().Err(err).Msg("contents listing unavailable")
		return []string{}
	}

	images := collectImages(root)
	for _, entry := range root {
		if entry.Type != "dir" || !slices.Contains(imageDirs, strings.ToLower(entry.Name)) {
			continue
		}
		sub, err := src.ListContents(ctx, owner, name, entry.Path)
		if err != nil {
			logger.Warn().Err(err).Str("dir", entry.Path).Msg("skipping image directory")
			continue
		}
		images = append(images, collectImages(sub)...)
	}
	return images
}

func collectImages(entries []models.ContentEntry) []string {
	out := []string{}
	for _, e := range entries {
		if e.Type != "file" || e.DownloadURL == "" {
			continue
		}
		if slices.Contains(imageExts, strings.ToLower(path.Ext(e.Name))) {
			out = append(out, e.DownloadURL)
		}
	}
	return out
}

// RenderMarkdown converts README markdown to HTML. Raw HTML in the README is
// dropped; the site injects the result as-is.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags | blackfriday.SkipHTML,
	})
	return string(blackfriday.Run([]byte(md), blackfriday.WithRenderer(renderer)))
}
