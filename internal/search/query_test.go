package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	query := BuildQuery("topic:cli language:go")

	assert.Contains(t, query, `search(query: "topic:cli language:go", type: REPOSITORY, first: 100)`)
	assert.Contains(t, query, "rateLimit { cost remaining resetAt }")

	for _, field := range []string{
		"name", "nameWithOwner", "url", "homepageUrl", "description",
		"parent { nameWithOwner }",
		"languages(first: 5) { nodes { name } }",
		"releases(last: 1) { nodes { tagName } }",
		"forkCount", "stargazers { totalCount }", "diskUsage", "createdAt",
		"repositoryTopics(first: 10) { nodes { topic { name } } }",
	} {
		assert.Contains(t, query, field)
	}

	assert.NotContains(t, query, "after:", "query must not paginate")
}

func TestBuildQuery_Verbatim(t *testing.T) {
	// Quotes inside the expression are not escaped.
	query := BuildQuery(`stars:>10 "hello world"`)
	assert.Contains(t, query, `search(query: "stars:>10 "hello world"", type: REPOSITORY`)
}

func TestBuildQuery_BalancedBraces(t *testing.T) {
	query := BuildQuery("")
	assert.Equal(t, strings.Count(query, "{"), strings.Count(query, "}"))
	assert.Equal(t, strings.Count(query, "("), strings.Count(query, ")"))
}
