package github

// API configuration.
const (
	DefaultGraphQLURL = "https://api.github.com/graphql"
	AcceptHeader      = "application/vnd.github+json"
	ContentType       = "application/json"
	APIVersion        = "2022-11-28"
)
