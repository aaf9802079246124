// Package collector provides GitHub repository search collection functionality.
package collector

import (
	"time"

	"github.com/locktivity/epack-collector-github-search/internal/search"
	"github.com/rs/zerolog"
)

// SchemaVersion is the version of the output schema.
const SchemaVersion = "1.0.0"

// StatusFunc is called to report indeterminate status updates.
type StatusFunc func(message string)

// Config holds the collector configuration passed via stdin.
type Config struct {
	Query           string   `json:"query"`
	GitHubToken     string   `json:"github_token"`    // Classic PAT (legacy)
	AppID           int64    `json:"app_id"`          // GitHub App ID (recommended)
	InstallationID  int64    `json:"installation_id"` // GitHub App installation ID
	PrivateKey      string   `json:"private_key"`     // GitHub App private key (PEM)
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`
	ReportRateLimit bool     `json:"report_rate_limit"`

	// Optional, set by main
	OnStatus StatusFunc      `json:"-"`
	Logger   *zerolog.Logger `json:"-"`
}

// SearchResults represents the collected search results for one query.
type SearchResults struct {
	SchemaVersion string                 `json:"schema_version"`
	CollectedAt   string                 `json:"collected_at"`
	Query         string                 `json:"query"`
	Scope         Scope                  `json:"scope"`
	RateLimit     *RateLimitStatus       `json:"rate_limit"`
	Results       []search.DisplayRecord `json:"results"`
}

// Scope describes what was included and excluded from the results.
type Scope struct {
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`
	ResultsCoverage int      `json:"results_coverage"`
}

// RateLimitStatus is the rate limit budget observed after the search.
type RateLimitStatus struct {
	Cost      int    `json:"cost"`
	Remaining *int   `json:"remaining"`
	ResetAt   string `json:"reset_at"`
}

// NewSearchResults creates a new SearchResults with the current timestamp.
func NewSearchResults(query string) *SearchResults {
	return &SearchResults{
		SchemaVersion: SchemaVersion,
		CollectedAt:   time.Now().UTC().Format(time.RFC3339),
		Query:         query,
		Results:       []search.DisplayRecord{},
	}
}
