package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/kevinmichaelchen/showcase/internal/config"
	"github.com/kevinmichaelchen/showcase/internal/embedding"
	"github.com/kevinmichaelchen/showcase/internal/github"
	"github.com/kevinmichaelchen/showcase/internal/llm"
	"github.com/kevinmichaelchen/showcase/internal/models"
	"github.com/kevinmichaelchen/showcase/internal/projects"
	"github.com/kevinmichaelchen/showcase/internal/surrealdb"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	cacheFile      = "repos.json"
	enrichParallel = 5
	readmeExcerpt  = 3000
)

type SyncOptions struct {
	SkipEnrich bool
	Force      bool
	// Offline converts the repositories cached by the last sync instead of
	// calling GitHub.
	Offline bool
}

// Store is the slice of the SurrealDB client a sync writes through.
type Store interface {
	InitSchema(ctx context.Context) error
	UpsertProject(ctx context.Context, p models.Project) error
	PruneProjects(ctx context.Context, keep []string) (int, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProjectsNeedingSummary(ctx context.Context) ([]models.Project, error)
	GetProjectsNeedingEmbedding(ctx context.Context) ([]models.Project, error)
	UpdateSummary(ctx context.Context, name, summary string) error
	UpdateEmbedding(ctx context.Context, name string, embedding []float32) error
}

var _ Store = (*surrealdb.Client)(nil)

type Summarizer interface {
	Summarize(ctx context.Context, p models.Project, readme string) (*models.SummaryResult, error)
}

type Embedder interface {
	EmbedProjects(ctx context.Context, list []models.Project) ([][]float32, error)
}

// Syncer publishes projects to a Store and enriches them.
type Syncer struct {
	Store      Store
	Source     Source
	Summarizer Summarizer
	Embedder   Embedder
	// CacheFile holds the raw repositories of the last online sync.
	CacheFile string
}

// Sync connects to SurrealDB and runs a Syncer wired to GitHub and the
// configured LLM and embedding endpoints.
func Sync(ctx context.Context, cfg *config.Config, opts SyncOptions) error {
	log.Info().Str("component", "sync").Msg("Connecting to SurrealDB...")
	db, err := surrealdb.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(ctx) }()

	s := &Syncer{
		Store:      db,
		Source:     github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken),
		Summarizer: llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel),
		Embedder:   embedding.NewClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel),
		CacheFile:  cacheFile,
	}
	return s.Run(ctx, cfg, opts)
}

func (s *Syncer) Run(ctx context.Context, cfg *config.Config, opts SyncOptions) error {
	logger := log.With().Str("component", "sync").Logger()

	if err := s.Store.InitSchema(ctx); err != nil {
		return err
	}

	// Step 1: Load repos (from cache or GitHub)
	repos, err := s.loadRepos(ctx, cfg, opts.Offline)
	if err != nil {
		return err
	}

	// Step 2: Replace the published snapshot
	list := projects.Convert(repos, projects.OptionsFromConfig(cfg))
	logger.Info().Int("repos", len(repos)).Int("projects", len(list)).Msg("Publishing projects")
	for _, p := range list {
		if err := s.Store.UpsertProject(ctx, p); err != nil {
			return err
		}
	}
	removed, err := s.Store.PruneProjects(ctx, projectNames(list))
	if err != nil {
		return err
	}
	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Pruned projects no longer featured")
	}

	if opts.SkipEnrich {
		logger.Info().Msg("Skipping enrichment (--skip-enrich)")
		return nil
	}
	if cfg.LLMAPIKey == "" {
		logger.Warn().Msg("LLM_API_KEY not set, skipping enrichment")
		return nil
	}

	if err := s.summarize(ctx, cfg, opts.Force); err != nil {
		return err
	}
	if err := s.embed(ctx, opts.Force); err != nil {
		return err
	}

	logger.Info().Msg("Sync complete!")
	return nil
}

func (s *Syncer) summarize(ctx context.Context, cfg *config.Config, force bool) error {
	logger := log.With().Str("component", "sync").Logger()

	var (
		toEnrich []models.Project
		err      error
	)
	if force {
		toEnrich, err = s.Store.ListProjects(ctx)
	} else {
		toEnrich, err = s.Store.GetProjectsNeedingSummary(ctx)
	}
	if err != nil {
		return err
	}

	if len(toEnrich) == 0 {
		logger.Info().Msg("All projects already summarized")
		return nil
	}
	logger.Info().Int("count", len(toEnrich)).Msg("Summarizing projects...")

	var done atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(enrichParallel)

	for _, p := range toEnrich {
		g.Go(func() error {
			readme, err := s.Source.GetReadme(gCtx, cfg.GitHubUsername, p.Name)
			if err != nil {
				logger.Debug().Err(err).Str("project", p.Name).Msg("no README for summary")
			}
			if len(readme) > readmeExcerpt {
				readme = readme[:readmeExcerpt]
			}

			result, err := s.Summarizer.Summarize(gCtx, p, readme)
			if err != nil {
				logger.Warn().Err(err).Str("project", p.Name).Msg("summary failed")
				return nil // continue with other projects
			}
			if err := s.Store.UpdateSummary(gCtx, p.Name, result.Summary); err != nil {
				logger.Warn().Err(err).Str("project", p.Name).Msg("storing summary failed")
				return nil
			}

			n := done.Add(1)
			logger.Debug().Int64("done", n).Int("total", len(toEnrich)).Msg("summarized")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Int64("count", done.Load()).Msg("Summaries complete")
	return nil
}

func (s *Syncer) embed(ctx context.Context, force bool) error {
	logger := log.With().Str("component", "sync").Logger()

	var (
		toEmbed []models.Project
		err     error
	)
	if force {
		toEmbed, err = s.Store.ListProjects(ctx)
	} else {
		toEmbed, err = s.Store.GetProjectsNeedingEmbedding(ctx)
	}
	if err != nil {
		return err
	}

	if len(toEmbed) == 0 {
		logger.Info().Msg("All projects already have embeddings")
		return nil
	}

	logger.Info().Int("count", len(toEmbed)).Msg("Generating embeddings...")
	vectors, err := s.Embedder.EmbedProjects(ctx, toEmbed)
	if err != nil {
		return fmt.Errorf("generating embeddings: %w", err)
	}
	if len(vectors) != len(toEmbed) {
		return fmt.Errorf("generating embeddings: got %d vectors for %d projects", len(vectors), len(toEmbed))
	}
	for i, p := range toEmbed {
		if err := s.Store.UpdateEmbedding(ctx, p.Name, vectors[i]); err != nil {
			logger.Warn().Err(err).Str("project", p.Name).Msg("storing embedding failed")
		}
	}
	return nil
}

func projectNames(list []models.Project) []string {
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
	}
	return names
}

func (s *Syncer) loadRepos(ctx context.Context, cfg *config.Config, offline bool) ([]models.Repo, error) {
	if offline {
		cached, err := readCache(s.CacheFile)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.CacheFile, err)
		}
		log.Info().Int("repos", len(cached)).Msg("Using cached repositories (--offline)")
		return cached, nil
	}

	if cfg.GitHubUsername == "" {
		return nil, github.ErrNoUsername
	}
	log.Info().Str("user", cfg.GitHubUsername).Msg("Fetching repositories from GitHub...")
	repos, err := s.Source.ListUserRepos(ctx, cfg.GitHubUsername, cfg.MaxRepos)
	if err != nil {
		return nil, fmt.Errorf("fetching repositories: %w", err)
	}

	if err := writeCache(s.CacheFile, repos); err != nil {
		log.Warn().Err(err).Str("file", s.CacheFile).Msg("could not cache repositories")
	}
	return repos, nil
}

func readCache(file string) ([]models.Repo, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var repos []models.Repo
	if err := json.Unmarshal(data, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func writeCache(file string, repos []models.Repo) error {
	data, err := json.MarshalIndent(repos, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0o644)
}
