package github

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoUsername is returned before any request is sent when no GitHub
	// username is configured.
	ErrNoUsername   = errors.New("GitHub username not configured")
	ErrUnauthorized = errors.New("invalid GitHub token")
	ErrRateLimited  = errors.New("GitHub API rate limit exceeded")
	ErrNotFound     = errors.New("GitHub user or repository not found")
)

// APIError is any non-success response that has no more specific class.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error: %d", e.StatusCode)
}

// RateLimitError wraps ErrRateLimited with the reset time GitHub reported, if any.
type RateLimitError struct {
	Reset time.Time
}

func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return ErrRateLimited.Error()
	}
	return fmt.Sprintf("%s (resets at %s)", ErrRateLimited, e.Reset.UTC().Format(time.RFC3339))
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// Kind names the class of a fetch error: config, unauthorized, rate_limited,
// not_found, api or transport.
func Kind(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoUsername):
		return "config"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &apiErr):
		return "api"
	default:
		return "transport"
	}
}

// Message converts a fetch error into the single message shown to visitors.
func Message(err error) string {
	var apiErr *APIError
	switch Kind(err) {
	case "":
		return ""
	case "config":
		return "GitHub username not configured"
	case "unauthorized":
		return "Invalid GitHub token"
	case "rate_limited":
		return "GitHub API rate limit exceeded. Please try again later."
	case "not_found":
		return "GitHub user or repository not found"
	case "api":
		errors.As(err, &apiErr)
		return fmt.Sprintf("GitHub API error: %d", apiErr.StatusCode)
	default:
		return "Failed to load projects. Please try again."
	}
}
