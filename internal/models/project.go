package models

import "time"

// Project is the display-ready record a portfolio card renders.
type Project struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Technologies []string  `json:"technologies"`
	GitHubURL    string    `json:"githubUrl"`
	LiveURL      string    `json:"liveUrl"`
	Category     string    `json:"category"`
	Stars        int       `json:"stars"`
	Forks        int       `json:"forks"`
	LastUpdated  time.Time `json:"lastUpdated"`
	AISummary    *string   `json:"aiSummary,omitempty"`
}

// ProjectDetail backs the project detail page.
type ProjectDetail struct {
	Project
	Topics     []string  `json:"topics"`
	Language   string    `json:"language,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	Readme     string    `json:"readme"`
	ReadmeHTML string    `json:"readmeHtml"`
	Images     []string  `json:"images"`
}

// SearchResult is a project matched by semantic search.
type SearchResult struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	GitHubURL   string   `json:"github_url"`
	Stars       int      `json:"stars"`
	AISummary   *string  `json:"ai_summary"`
	Tech        []string `json:"technologies"`
	Score       float64  `json:"score"`
}
