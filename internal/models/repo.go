package models

import "time"

// Repo mirrors the repository object returned by the GitHub REST API.
type Repo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description *string   `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Homepage    *string   `json:"homepage"`
	Language    *string   `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Topics      []string  `json:"topics"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Size        int       `json:"size"`
	Archived    bool      `json:"archived"`
	Disabled    bool      `json:"disabled"`
	Fork        bool      `json:"fork"`
	Owner       Owner     `json:"owner"`
}

type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// DescriptionText returns the description or "" when GitHub sent null.
func (r Repo) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

func (r Repo) LanguageText() string {
	if r.Language == nil {
		return ""
	}
	return *r.Language
}

func (r Repo) HomepageText() string {
	if r.Homepage == nil {
		return ""
	}
	return *r.Homepage
}

// ContentEntry is one item of a repository contents listing.
type ContentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Size        int    `json:"size"`
	DownloadURL string `json:"download_url"`
}

type SummaryResult struct {
	Summary string `json:"summary"`
}
