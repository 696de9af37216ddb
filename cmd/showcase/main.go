package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/kevinmichaelchen/showcase/internal/config"
	"github.com/kevinmichaelchen/showcase/internal/embedding"
	"github.com/kevinmichaelchen/showcase/internal/github"
	"github.com/kevinmichaelchen/showcase/internal/pipeline"
	"github.com/kevinmichaelchen/showcase/internal/server"
	"github.com/kevinmichaelchen/showcase/internal/surrealdb"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:           "showcase",
		Short:         "GitHub repositories → portfolio projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(config.Load(), verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(serveCmd(), projectsCmd(), detailCmd(), schemaCmd(), syncCmd(), searchCmd(), statsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config, verbose bool) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func newGitHub(cfg *config.Config) *github.Client {
	return github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken)
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projects as JSON for the portfolio site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if addr != "" {
				cfg.ListenAddr = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, newGitHub(cfg)).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides LISTEN_ADDR)")
	return cmd
}

func projectsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Fetch repositories and print the resulting projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			list, err := pipeline.Projects(context.Background(), newGitHub(cfg), cfg)
			if err != nil {
				return errors.New(github.Message(err))
			}

			if asJSON {
				return printJSON(list)
			}
			if len(list) == 0 {
				fmt.Println("No projects found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tCATEGORY\tSTARS\tTECHNOLOGIES")
			for _, p := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", p.Title, p.Category, p.Stars, strings.Join(p.Technologies, ", "))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func detailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detail [repo]",
		Short: "Print the detail page data for one repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			detail, err := pipeline.Detail(context.Background(), newGitHub(cfg), cfg, args[0])
			if err != nil {
				return errors.New(github.Message(err))
			}
			return printJSON(detail)
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Initialize/update SurrealDB schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()

			db, err := surrealdb.NewClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(ctx) }()

			if err := db.InitSchema(ctx); err != nil {
				return err
			}
			fmt.Println("Schema initialized")
			return nil
		},
	}
}

func syncCmd() *cobra.Command {
	var skipEnrich, force, offline bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Publish projects to SurrealDB, enriched with AI summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			return pipeline.Sync(context.Background(), cfg, pipeline.SyncOptions{
				SkipEnrich: skipEnrich,
				Force:      force,
				Offline:    offline,
			})
		},
	}
	cmd.Flags().BoolVar(&skipEnrich, "skip-enrich", false, "Publish only (no AI calls)")
	cmd.Flags().BoolVar(&force, "force", false, "Re-summarize and re-embed all projects")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use repos.json from the last sync instead of GitHub")
	return cmd
}

func searchCmd() *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Semantic similarity search across published projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()
			query := args[0]

			embClient := embedding.NewClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel)
			vec, err := embClient.EmbedSingle(ctx, query)
			if err != nil {
				return fmt.Errorf("embedding query: %w", err)
			}

			db, err := surrealdb.NewClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(ctx) }()

			results, err := db.VectorSearch(ctx, vec, k)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Println("No results found")
				return nil
			}

			fmt.Printf("Top %d results for %q:\n\n", len(results), query)
			for i, r := range results {
				fmt.Printf("%d. %s [%s]  (%.3f)  ★ %d\n", i+1, r.Title, r.Category, r.Score, r.Stars)
				fmt.Printf("   %s\n", r.GitHubURL)
				if r.AISummary != nil {
					fmt.Printf("   %s\n", *r.AISummary)
				}
				if len(r.Tech) > 0 {
					fmt.Printf("   Tech: %s\n", strings.Join(r.Tech, ", "))
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 5, "Number of results")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show published project counts and category breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()

			db, err := surrealdb.NewClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(ctx) }()

			stats, err := db.GetStats(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Projects:   %d\n", stats.Total)
			fmt.Printf("Summarized: %d\n", stats.Summarized)
			fmt.Printf("Embedded:   %d\n", stats.Embedded)

			cats, err := db.GetCategoryBreakdown(ctx)
			if err != nil {
				return err
			}

			if len(cats) > 0 {
				sort.SliceStable(cats, func(i, j int) bool {
					return cats[i].Count > cats[j].Count
				})
				fmt.Println("\nCategory breakdown:")
				for _, c := range cats {
					fmt.Printf("  %-20s %d\n", c.Category, c.Count)
				}
			}

			return nil
		},
	}
}
