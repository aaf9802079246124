// epack-collector-github-search collects GitHub repository search results.
//
// This binary is designed to be executed by the epack collector runner.
// It uses the epack Component SDK for protocol compliance.
package main

import (
	"os"

	"github.com/locktivity/epack-collector-github-search/internal/collector"
	"github.com/locktivity/epack/componentsdk"
	"github.com/rs/zerolog"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	componentsdk.RunCollector(componentsdk.CollectorSpec{
		Name:        "github-search",
		Version:     Version,
		Description: "Collects GitHub repository search results",
	}, run)
}

func run(ctx componentsdk.CollectorContext) error {
	// Stdout belongs to the SDK protocol; logs go to stderr
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
		Timestamp().
		Str("collector", "github-search").
		Logger()

	cfg := ctx.Config()
	config := collector.Config{
		Query:           getString(cfg, "query"),
		GitHubToken:     ctx.Secret("GITHUB_TOKEN"),
		AppID:           getInt64(cfg, "app_id"),
		InstallationID:  getInt64(cfg, "installation_id"),
		PrivateKey:      ctx.Secret("GITHUB_APP_PRIVATE_KEY"),
		IncludePatterns: getStringSlice(cfg, "include_patterns"),
		ExcludePatterns: getStringSlice(cfg, "exclude_patterns"),
		ReportRateLimit: getBool(cfg, "report_rate_limit"),
		OnStatus: func(message string) {
			log.Info().Msg(message)
		},
		Logger: &log,
	}

	if config.Query == "" {
		return componentsdk.NewConfigError("query is required")
	}

	// Check for valid auth configuration
	hasAppAuth := config.AppID != 0 && config.PrivateKey != ""
	hasTokenAuth := config.GitHubToken != ""
	if !hasAppAuth && !hasTokenAuth {
		return componentsdk.NewConfigError("authentication required: provide GITHUB_TOKEN or app_id + GITHUB_APP_PRIVATE_KEY")
	}

	c, err := collector.New(config)
	if err != nil {
		return componentsdk.NewConfigError("creating collector: %v", err)
	}
	results, err := c.Collect(ctx.Context())
	if err != nil {
		return componentsdk.NewNetworkError("collecting search results: %v", err)
	}

	return ctx.Emit(results)
}

// getString safely extracts a string from config map
func getString(cfg map[string]any, key string) string {
	if v, ok := cfg[key].(string); ok {
		return v
	}
	return ""
}

// getBool safely extracts a bool from config map
func getBool(cfg map[string]any, key string) bool {
	v, _ := cfg[key].(bool)
	return v
}

// getInt64 safely extracts an int64 from config map
func getInt64(cfg map[string]any, key string) int64 {
	switch v := cfg[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// getStringSlice safely extracts a string slice from config map
func getStringSlice(cfg map[string]any, key string) []string {
	items, ok := cfg[key].([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
