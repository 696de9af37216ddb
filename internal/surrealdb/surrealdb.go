package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/kevinmichaelchen/showcase/internal/config"
	"github.com/kevinmichaelchen/showcase/internal/models"
	sdk "github.com/surrealdb/surrealdb.go"
)

// Client stores the last published project snapshot.
type Client struct {
	db *sdk.DB
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if !cfg.StoreConfigured() {
		return nil, fmt.Errorf("SurrealDB not configured (SURREAL_URL, SURREAL_NS, SURREAL_DB)")
	}

	db, err := sdk.FromEndpointURLString(ctx, cfg.SurrealURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, sdk.Auth{
		Namespace: cfg.SurrealNS,
		Database:  cfg.SurrealDB,
		Username:  cfg.SurrealUser,
		Password:  cfg.SurrealPass,
	}); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("signing in: %w", err)
	}

	if err := db.Use(ctx, cfg.SurrealNS, cfg.SurrealDB); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("selecting ns/db: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close(ctx)
}

func (c *Client) InitSchema(ctx context.Context) error {
	schema := `
DEFINE TABLE IF NOT EXISTS project SCHEMAFULL;

DEFINE FIELD IF NOT EXISTS repo_id      ON TABLE project TYPE int;
DEFINE FIELD IF NOT EXISTS name         ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS title        ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS description  ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS image        ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS technologies ON TABLE project TYPE array<string>;
DEFINE FIELD IF NOT EXISTS github_url   ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS live_url     ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS category     ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS stars        ON TABLE project TYPE int;
DEFINE FIELD IF NOT EXISTS forks        ON TABLE project TYPE int;
DEFINE FIELD IF NOT EXISTS last_updated ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS ai_summary   ON TABLE project TYPE option<string>;
DEFINE FIELD IF NOT EXISTS embedding    ON TABLE project TYPE option<array<float>>;
DEFINE FIELD IF NOT EXISTS synced_at    ON TABLE project TYPE datetime;
DEFINE FIELD IF NOT EXISTS summarized_at ON TABLE project TYPE option<datetime>;

DEFINE INDEX IF NOT EXISTS idx_project_name ON TABLE project FIELDS name UNIQUE;
`
	if _, err := sdk.Query[any](ctx, c.db, schema, nil); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// projectRow is the stored shape of a project.
type projectRow struct {
	RepoID       int64    `json:"repo_id"`
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	GitHubURL    string   `json:"github_url"`
	LiveURL      string   `json:"live_url"`
	Category     string   `json:"category"`
	Stars        int      `json:"stars"`
	Forks        int      `json:"forks"`
	LastUpdated  string   `json:"last_updated"`
	AISummary    *string  `json:"ai_summary"`
}

func (r projectRow) project() models.Project {
	// last_updated is stored as RFC 3339 text.
	updated, _ := time.Parse(time.RFC3339, r.LastUpdated)
	return models.Project{
		ID:           r.RepoID,
		Name:         r.Name,
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		Technologies: r.Technologies,
		GitHubURL:    r.GitHubURL,
		LiveURL:      r.LiveURL,
		Category:     r.Category,
		Stars:        r.Stars,
		Forks:        r.Forks,
		LastUpdated:  updated,
		AISummary:    r.AISummary,
	}
}

func rowsToProjects(rows []projectRow) []models.Project {
	out := make([]models.Project, len(rows))
	for i, r := range rows {
		out[i] = r.project()
	}
	return out
}

// UpsertProject writes the display fields of p. Summary and embedding are
// left untouched so re-syncing does not discard enrichment.
func (c *Client) UpsertProject(ctx context.Context, p models.Project) error {
	tech := p.Technologies
	if tech == nil {
		tech = []string{}
	}
	data := map[string]any{
		"repo_id":      p.ID,
		"name":         p.Name,
		"title":        p.Title,
		"description":  p.Description,
		"image":        p.Image,
		"technologies": tech,
		"github_url":   p.GitHubURL,
		"live_url":     p.LiveURL,
		"category":     p.Category,
		"stars":        p.Stars,
		"forks":        p.Forks,
		"last_updated": p.LastUpdated.UTC().Format(time.RFC3339),
		"synced_at":    time.Now().UTC(),
	}

	_, err := sdk.Query[any](ctx, c.db,
		`UPSERT type::thing("project", $id) MERGE $data`,
		map[string]any{
			"id":   p.Name,
			"data": data,
		})
	if err != nil {
		return fmt.Errorf("upserting %s: %w", p.Name, err)
	}
	return nil
}

// PruneProjects deletes every project whose name is not in keep and returns
// how many were removed.
func (c *Client) PruneProjects(ctx context.Context, keep []string) (int, error) {
	if keep == nil {
		keep = []string{}
	}
	results, err := sdk.Query[[]projectRow](ctx, c.db,
		`DELETE project WHERE name NOTINSIDE $keep RETURN BEFORE`,
		map[string]any{"keep": keep})
	if err != nil {
		return 0, fmt.Errorf("pruning projects: %w", err)
	}
	if len(*results) == 0 {
		return 0, nil
	}
	return len((*results)[0].Result), nil
}

func (c *Client) queryProjects(ctx context.Context, what, query string) ([]models.Project, error) {
	results, err := sdk.Query[[]projectRow](ctx, c.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", what, err)
	}
	if len(*results) == 0 {
		return nil, nil
	}
	return rowsToProjects((*results)[0].Result), nil
}

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	return c.queryProjects(ctx, "projects",
		`SELECT * FROM project ORDER BY last_updated DESC`)
}

func (c *Client) GetProjectsNeedingSummary(ctx context.Context) ([]models.Project, error) {
	return c.queryProjects(ctx, "projects needing summary",
		`SELECT * FROM project WHERE ai_summary IS NONE`)
}

func (c *Client) GetProjectsNeedingEmbedding(ctx context.Context) ([]models.Project, error) {
	return c.queryProjects(ctx, "projects needing embedding",
		`SELECT * FROM project WHERE ai_summary IS NOT NONE AND embedding IS NONE`)
}

func (c *Client) UpdateSummary(ctx context.Context, name, summary string) error {
	_, err := sdk.Query[any](ctx, c.db,
		`UPDATE project SET
			ai_summary = $ai_summary,
			summarized_at = time::now()
		WHERE name = $name`,
		map[string]any{
			"name":       name,
			"ai_summary": summary,
		})
	if err != nil {
		return fmt.Errorf("updating summary for %s: %w", name, err)
	}
	return nil
}

func (c *Client) UpdateEmbedding(ctx context.Context, name string, embedding []float32) error {
	_, err := sdk.Query[any](ctx, c.db,
		`UPDATE project SET embedding = $embedding WHERE name = $name`,
		map[string]any{
			"name":      name,
			"embedding": embedding,
		})
	if err != nil {
		return fmt.Errorf("updating embedding for %s: %w", name, err)
	}
	return nil
}

func (c *Client) VectorSearch(ctx context.Context, queryVec []float32, k int) ([]models.SearchResult, error) {
	// Brute-force cosine similarity; a portfolio holds a few dozen projects.
	query := fmt.Sprintf(`
		SELECT name, title, description, category, github_url, stars, ai_summary, technologies,
			vector::similarity::cosine(embedding, $query_vec) AS score
		FROM project
		WHERE embedding IS NOT NONE
		ORDER BY score DESC
		LIMIT %d
	`, k)

	results, err := sdk.Query[[]models.SearchResult](ctx, c.db, query,
		map[string]any{"query_vec": queryVec})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	if len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

type Stats struct {
	Total      int
	Summarized int
	Embedded   int
}

func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	results, err := sdk.Query[[]map[string]any](ctx, c.db,
		`SELECT
			count() AS total,
			math::sum(IF ai_summary IS NOT NONE THEN 1 ELSE 0 END) AS summarized,
			math::sum(IF embedding IS NOT NONE THEN 1 ELSE 0 END) AS embedded
		FROM project GROUP ALL`,
		nil)
	if err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}
	if len(*results) == 0 || len((*results)[0].Result) == 0 {
		return &Stats{}, nil
	}
	row := (*results)[0].Result[0]
	return &Stats{
		Total:      toInt(row["total"]),
		Summarized: toInt(row["summarized"]),
		Embedded:   toInt(row["embedded"]),
	}, nil
}

type CategoryCount struct {
	Category string
	Count    int
}

func (c *Client) GetCategoryBreakdown(ctx context.Context) ([]CategoryCount, error) {
	list, err := c.queryProjects(ctx, "categories", `SELECT category FROM project`)
	if err != nil {
		return nil, err
	}
	return CountCategories(list), nil
}

// CountCategories tallies projects per category, in first-seen order.
func CountCategories(list []models.Project) []CategoryCount {
	var out []CategoryCount
	index := map[string]int{}
	for _, p := range list {
		i, ok := index[p.Category]
		if !ok {
			i = len(out)
			index[p.Category] = i
			out = append(out, CategoryCount{Category: p.Category})
		}
		out[i].Count++
	}
	return out
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	default:
		return 0
	}
}
