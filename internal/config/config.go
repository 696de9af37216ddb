package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	defaultAPIBaseURL    = "https://api.github.com"
	defaultMaxRepos      = 12
	defaultFeaturedCount = 6
)

type Config struct {
	GitHubUsername string
	GitHubToken    string
	GitHubAPIURL   string

	ExcludedRepos      []string
	MaxRepos           int
	FeaturedCount      int
	CustomCategories   map[string]string
	CustomDescriptions map[string]string
	CustomImages       map[string]string

	ListenAddr string
	LogLevel   string
	LogFormat  string

	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	EmbeddingBaseURL string
	EmbeddingAPIKey  string
	EmbeddingModel   string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubUsername: strings.TrimSpace(os.Getenv("GITHUB_USERNAME")),
		GitHubToken:    strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		GitHubAPIURL:   os.Getenv("GITHUB_API_URL"),

		ExcludedRepos:      ParseList(os.Getenv("EXCLUDED_REPOS")),
		MaxRepos:           intFromEnv("MAX_REPOS", defaultMaxRepos),
		FeaturedCount:      intFromEnv("FEATURED_COUNT", defaultFeaturedCount),
		CustomCategories:   ParseKeyValuePairs(os.Getenv("REPO_CATEGORIES")),
		CustomDescriptions: ParseKeyValuePairs(os.Getenv("CUSTOM_DESCRIPTIONS")),
		CustomImages:       ParseKeyValuePairs(os.Getenv("REPO_IMAGES")),

		ListenAddr: os.Getenv("LISTEN_ADDR"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		LogFormat:  os.Getenv("LOG_FORMAT"),

		SurrealURL:  os.Getenv("SURREAL_URL"),
		SurrealNS:   os.Getenv("SURREAL_NS"),
		SurrealDB:   os.Getenv("SURREAL_DB"),
		SurrealUser: os.Getenv("SURREAL_USER"),
		SurrealPass: os.Getenv("SURREAL_PASS"),

		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   os.Getenv("LLM_MODEL"),

		EmbeddingBaseURL: os.Getenv("EMBEDDING_BASE_URL"),
		EmbeddingAPIKey:  os.Getenv("EMBEDDING_API_KEY"),
		EmbeddingModel:   os.Getenv("EMBEDDING_MODEL"),
	}

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.GitHubAPIURL == "" {
		c.GitHubAPIURL = defaultAPIBaseURL
	}
	c.GitHubAPIURL = strings.TrimSuffix(c.GitHubAPIURL, "/")

	// The SDK appends /rpc automatically
	c.SurrealURL = strings.TrimSuffix(c.SurrealURL, "/rpc")
	c.SurrealURL = strings.TrimSuffix(c.SurrealURL, "/")

	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
	if c.LLMBaseURL == "" {
		c.LLMBaseURL = "https://api.openai.com/v1"
	}
	if c.LLMModel == "" {
		c.LLMModel = "gpt-4o-mini"
	}
	if c.EmbeddingBaseURL == "" {
		c.EmbeddingBaseURL = c.LLMBaseURL
	}
	if c.EmbeddingAPIKey == "" {
		c.EmbeddingAPIKey = c.LLMAPIKey
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = "text-embedding-3-small"
	}
}

// StoreConfigured reports whether enough SurrealDB settings are present to connect.
func (c *Config) StoreConfigured() bool {
	return c.SurrealURL != "" && c.SurrealNS != "" && c.SurrealDB != ""
}

// ParseList splits a comma-separated list, trimming entries and dropping empty ones.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseKeyValuePairs parses "key:value,key:value". Only the text between the
// first and second colon of a pair is kept as the value; pairs missing a key
// or value are dropped.
func ParseKeyValuePairs(s string) map[string]string {
	out := map[string]string{}
	if s == "" {
		return out
	}
	for _, pair := range strings.Split(s, ",") {
		fields := strings.Split(pair, ":")
		if len(fields) < 2 {
			continue
		}
		key := strings.TrimSpace(fields[0])
		value := strings.TrimSpace(fields[1])
		if key != "" && value != "" {
			out[key] = value
		}
	}
	return out
}

func intFromEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Int("default", def).Msg("invalid integer setting, using default")
		return def
	}
	return n
}
