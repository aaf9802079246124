// Package github provides GraphQL client functionality for GitHub API.
package github

import (
	"strings"

	"github.com/shurcooL/githubv4"
)

// RateLimitQuery is the GraphQL query for reading the current rate limit budget.
type RateLimitQuery struct {
	RateLimit struct {
		Cost      githubv4.Int
		Remaining githubv4.Int
		ResetAt   githubv4.DateTime
	}
}

// RateLimit is the provider-imposed query cost budget.
// Remaining is the budget left after the current call was charged;
// nil when the reply did not report it.
type RateLimit struct {
	Cost      int               `json:"cost"`
	Remaining *int              `json:"remaining"`
	ResetAt   githubv4.DateTime `json:"resetAt"`
}

// Exhausted reports whether the reply explicitly stated a zero budget.
func (r *RateLimit) Exhausted() bool {
	return r != nil && r.Remaining != nil && *r.Remaining == 0
}

// GraphQLError is a single entry of a GraphQL "errors" array.
type GraphQLError struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// Envelope is the decoded reply of a search query.
// A well-formed reply carries either search data or an error message;
// the rate limit may accompany either.
type Envelope struct {
	RateLimit *RateLimit     `json:"rateLimit,omitempty"`
	Message   string         `json:"message,omitempty"`
	Errors    []GraphQLError `json:"errors,omitempty"`
	Data      *SearchData    `json:"data,omitempty"`
}

// SearchData is the "data" member of a search reply.
type SearchData struct {
	RateLimit *RateLimit    `json:"rateLimit,omitempty"`
	Search    *SearchResult `json:"search,omitempty"`
}

// SearchResult holds the repository search edges in provider order.
type SearchResult struct {
	RepositoryCount int    `json:"repositoryCount"`
	Edges           []Edge `json:"edges"`
}

// Shape identifies which of the reply variants an Envelope is.
type Shape int

const (
	// ShapeMalformed is a reply with neither results nor an error message.
	ShapeMalformed Shape = iota
	// ShapeResults is a reply carrying a search result set (possibly empty).
	ShapeResults
	// ShapeErrorOnly is a reply carrying only an error message.
	ShapeErrorOnly
)

func (s Shape) String() string {
	switch s {
	case ShapeResults:
		return "results"
	case ShapeErrorOnly:
		return "error"
	default:
		return "malformed"
	}
}

// Shape classifies the envelope. A present but empty edges array counts as
// results; a null or missing one does not.
func (e *Envelope) Shape() Shape {
	if e.Data != nil && e.Data.Search != nil && e.Data.Search.Edges != nil {
		return ShapeResults
	}
	if e.ErrorMessage() != "" {
		return ShapeErrorOnly
	}
	return ShapeMalformed
}

// Limits returns the rate limit of the reply, preferring the top-level
// member over the one nested in data. Nil when the reply has none.
func (e *Envelope) Limits() *RateLimit {
	if e.RateLimit != nil {
		return e.RateLimit
	}
	if e.Data != nil {
		return e.Data.RateLimit
	}
	return nil
}

// Edges returns the search edges, or nil when the reply has no result set.
func (e *Envelope) Edges() []Edge {
	if e.Data == nil || e.Data.Search == nil {
		return nil
	}
	return e.Data.Search.Edges
}

// ErrorMessage returns the provider error text, joining GraphQL errors
// when no top-level message is present.
func (e *Envelope) ErrorMessage() string {
	if e.Message != "" {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, gqlErr := range e.Errors {
		if gqlErr.Message != "" {
			msgs = append(msgs, gqlErr.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// Edge is one search hit. The cursor is not used for pagination.
type Edge struct {
	Cursor string     `json:"cursor,omitempty"`
	Node   Repository `json:"node"`
}

// Repository represents a GitHub repository as selected by the search query.
type Repository struct {
	Name             string              `json:"name"`
	NameWithOwner    string              `json:"nameWithOwner"`
	URL              string              `json:"url"`
	HomepageURL      string              `json:"homepageUrl"`
	Description      *string             `json:"description"`
	Parent           *ParentRef          `json:"parent"`
	Languages        LanguageConnection  `json:"languages"`
	Releases         ReleaseConnection   `json:"releases"`
	ForkCount        int                 `json:"forkCount"`
	Stargazers       StargazerConnection `json:"stargazers"`
	DiskUsage        int                 `json:"diskUsage"` // kilobytes
	CreatedAt        githubv4.DateTime   `json:"createdAt"`
	RepositoryTopics TopicConnection     `json:"repositoryTopics"`
}

// IsFork reports whether the repository has a parent.
func (r Repository) IsFork() bool {
	return r.Parent != nil
}

// ParentRef identifies the repository a fork was created from.
type ParentRef struct {
	NameWithOwner string `json:"nameWithOwner"`
}

// LanguageConnection lists the first languages of a repository.
type LanguageConnection struct {
	Nodes []Language `json:"nodes"`
}

// Language is a repository language.
type Language struct {
	Name string `json:"name"`
}

// ReleaseConnection lists the latest release of a repository.
type ReleaseConnection struct {
	Nodes []Release `json:"nodes"`
}

// Release is a published release.
type Release struct {
	TagName string `json:"tagName"`
}

// StargazerConnection carries the star count.
type StargazerConnection struct {
	TotalCount int `json:"totalCount"`
}

// TopicConnection lists the first topics of a repository.
type TopicConnection struct {
	Nodes []RepositoryTopic `json:"nodes"`
}

// RepositoryTopic wraps a topic attached to a repository.
type RepositoryTopic struct {
	Topic Topic `json:"topic"`
}

// Topic is a repository topic.
type Topic struct {
	Name string `json:"name"`
}
