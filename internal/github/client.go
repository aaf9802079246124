package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// GitHubClient defines the interface for GitHub API operations.
// This interface allows for easy mocking in tests.
type GitHubClient interface {
	Execute(ctx context.Context, query string) (*Envelope, error)
	FetchRateLimit(ctx context.Context) (*RateLimit, error)
}

// Client wraps the GitHub GraphQL endpoint.
type Client struct {
	graphql    *githubv4.Client
	httpClient *http.Client
	graphqlURL string
}

// Ensure Client implements GitHubClient.
var _ GitHubClient = (*Client)(nil)

// NewClient creates a new GitHub client with the given token.
// The token is sent as a bearer credential on every request.
func NewClient(token string) *Client {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), src)

	return &Client{
		graphql:    githubv4.NewClient(httpClient),
		httpClient: httpClient,
		graphqlURL: DefaultGraphQLURL,
	}
}

// NewClientWithGraphQL creates a client with a custom HTTP client and GraphQL endpoint (for testing).
func NewClientWithGraphQL(httpClient *http.Client, graphqlURL string) *Client {
	return &Client{
		graphql:    githubv4.NewEnterpriseClient(graphqlURL, httpClient),
		httpClient: httpClient,
		graphqlURL: graphqlURL,
	}
}

// NewClientFromApp creates a client using GitHub App authentication.
func NewClientFromApp(appID, installationID int64, privateKey []byte) (*Client, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}

	httpClient := &http.Client{Transport: itr}
	return &Client{
		graphql:    githubv4.NewClient(httpClient),
		httpClient: httpClient,
		graphqlURL: DefaultGraphQLURL,
	}, nil
}

// Execute sends a raw GraphQL query and decodes the reply into an Envelope.
//
// The body is decoded whatever the HTTP status: GitHub answers auth failures
// with a JSON {"message": ...} document, which becomes an error-only
// envelope. Only network failures and undecodable bodies are errors.
func (c *Client) Execute(ctx context.Context, query string) (*Envelope, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	setAPIHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}

	return &envelope, nil
}

// FetchRateLimit reads the current rate limit budget.
func (c *Client) FetchRateLimit(ctx context.Context) (*RateLimit, error) {
	var query RateLimitQuery
	if err := c.graphql.Query(ctx, &query, nil); err != nil {
		return nil, err
	}

	remaining := int(query.RateLimit.Remaining)
	return &RateLimit{
		Cost:      int(query.RateLimit.Cost),
		Remaining: &remaining,
		ResetAt:   query.RateLimit.ResetAt,
	}, nil
}

// setAPIHeaders sets the standard GitHub API headers on a request.
func setAPIHeaders(req *http.Request) {
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("X-GitHub-Api-Version", APIVersion)
	req.Header.Set("Content-Type", ContentType)
}
