package search

import "fmt"

const queryTemplate = `query { ` +
	`rateLimit { cost remaining resetAt } ` +
	`search(query: "%s", type: REPOSITORY, first: %d) { ` +
	`repositoryCount edges { node { ... on Repository { ` +
	`name nameWithOwner url homepageUrl description ` +
	`parent { nameWithOwner } ` +
	`languages(first: %d) { nodes { name } } ` +
	`releases(last: %d) { nodes { tagName } } ` +
	`forkCount stargazers { totalCount } diskUsage createdAt ` +
	`repositoryTopics(first: %d) { nodes { topic { name } } } ` +
	`} } } } }`

// BuildQuery returns the GraphQL search query for expression.
// The expression is placed between double quotes as-is; callers own any escaping.
func BuildQuery(expression string) string {
	return fmt.Sprintf(queryTemplate, expression, PageSize, LanguagesLimit, ReleasesLimit, TopicsLimit)
}
