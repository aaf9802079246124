package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/locktivity/epack-collector-github-search/internal/github"
	"github.com/locktivity/epack-collector-github-search/internal/search"
	"github.com/rs/zerolog"
)

// Collector runs a GitHub repository search and packages the results.
type Collector struct {
	client github.GitHubClient
	config Config
}

// status reports an indeterminate status update.
func (c *Collector) status(message string) {
	if c.config.OnStatus != nil {
		c.config.OnStatus(message)
	}
}

func (c *Collector) logger() zerolog.Logger {
	if c.config.Logger != nil {
		return *c.config.Logger
	}
	return zerolog.Nop()
}

// New creates a new Collector with the given configuration.
// It supports two authentication methods:
//   - GitHub App (recommended): Set AppID, InstallationID, and PrivateKey
//   - Classic PAT (legacy): Set GitHubToken
func New(config Config) (*Collector, error) {
	var client github.GitHubClient
	var err error

	if config.AppID != 0 && config.PrivateKey != "" {
		if config.InstallationID == 0 {
			return nil, fmt.Errorf("installation_id is required when using GitHub App authentication")
		}
		client, err = github.NewClientFromApp(
			config.AppID,
			config.InstallationID,
			[]byte(config.PrivateKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub App client: %w", err)
		}
	} else if config.GitHubToken != "" {
		client = github.NewClient(config.GitHubToken)
	} else {
		return nil, fmt.Errorf("authentication required: provide app_id + private_key (recommended) or github_token")
	}

	return &Collector{
		client: client,
		config: config,
	}, nil
}

// NewWithClient creates a Collector with a custom client (for testing).
func NewWithClient(config Config, client github.GitHubClient) *Collector {
	return &Collector{
		client: client,
		config: config,
	}
}

// Collect runs the search and returns the filtered display records.
// Search failures yield an empty result list rather than an error.
func (c *Collector) Collect(ctx context.Context) (*SearchResults, error) {
	if c.config.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	includePatterns := c.config.IncludePatterns
	if len(includePatterns) == 0 {
		includePatterns = []string{DefaultIncludePattern}
	}
	excludePatterns := c.config.ExcludePatterns
	if excludePatterns == nil {
		excludePatterns = []string{}
	}

	results := NewSearchResults(c.config.Query)
	log := c.logger()

	pipeline := search.NewWithClient(c.config.Query, c.client).WithLogger(log)

	c.status(fmt.Sprintf("Searching GitHub for %q...", pipeline.Expression()))
	records := pipeline.GetDisplayRecords(ctx)

	filter := newRecordFilter(includePatterns, excludePatterns)
	filter.add(records)

	c.status(fmt.Sprintf("Found %d repositories", len(filter.kept)))

	results.Scope = Scope{
		IncludePatterns: includePatterns,
		ExcludePatterns: excludePatterns,
		ResultsCoverage: filter.coverage(),
	}
	results.Results = filter.kept

	if c.config.ReportRateLimit {
		results.RateLimit = c.fetchRateLimit(ctx, log)
	}

	c.status("Collection complete")

	return results, nil
}

// fetchRateLimit reads the remaining budget. Failures leave it unknown (nil).
func (c *Collector) fetchRateLimit(ctx context.Context, log zerolog.Logger) *RateLimitStatus {
	c.status("Checking rate limit...")

	limit, err := c.client.FetchRateLimit(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch rate limit")
		return nil
	}

	status := &RateLimitStatus{
		Cost:      limit.Cost,
		Remaining: limit.Remaining,
	}
	if !limit.ResetAt.IsZero() {
		status.ResetAt = limit.ResetAt.UTC().Format(time.RFC3339)
	}
	return status
}

// percent calculates the percentage of count over total, returning 0 if total is 0.
func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return (count * MaxPercentage) / total
}
