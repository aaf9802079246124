// Package search runs a GitHub repository search and turns the reply into
// display records.
package search

import (
	"context"

	"github.com/locktivity/epack-collector-github-search/internal/github"
	"github.com/rs/zerolog"
)

// Transport executes a GraphQL query and returns the decoded reply.
type Transport interface {
	Execute(ctx context.Context, query string) (*github.Envelope, error)
}

// Pipeline searches GitHub for one expression.
type Pipeline struct {
	expression string
	transport  Transport
	log        zerolog.Logger
}

// New creates a Pipeline that authenticates with credential.
func New(expression, credential string) *Pipeline {
	return NewWithClient(expression, github.NewClient(credential))
}

// NewWithClient creates a Pipeline over a custom transport (for testing).
func NewWithClient(expression string, transport Transport) *Pipeline {
	return &Pipeline{
		expression: expression,
		transport:  transport,
		log:        zerolog.Nop(),
	}
}

// WithLogger sets the logger used to report swallowed failures.
func (p *Pipeline) WithLogger(log zerolog.Logger) *Pipeline {
	p.log = log
	return p
}

// Expression returns the search expression.
func (p *Pipeline) Expression() string {
	return p.expression
}

// FetchEdges runs the search and validates the reply.
// It returns the edges in provider order, or exactly one of
// ErrRateLimitExceeded, ErrEmptyResult, *ProviderError or *TransportError.
func (p *Pipeline) FetchEdges(ctx context.Context) ([]github.Edge, error) {
	envelope, err := p.transport.Execute(ctx, BuildQuery(p.expression))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return validate(envelope)
}

// GetDisplayRecords runs the search and returns the non-fork repositories
// as display records. It never fails: any error from FetchEdges is logged
// and an empty list is returned.
func (p *Pipeline) GetDisplayRecords(ctx context.Context) []DisplayRecord {
	edges, err := p.FetchEdges(ctx)
	if err != nil {
		p.log.Warn().Err(err).Str("query", p.expression).Msg("Search failed, returning no results")
		return []DisplayRecord{}
	}

	records := Transform(edges)
	p.log.Debug().
		Str("query", p.expression).
		Int("edges", len(edges)).
		Int("records", len(records)).
		Msg("Search complete")
	return records
}

// validate applies the reply checks in order; the first match wins.
func validate(envelope *github.Envelope) ([]github.Edge, error) {
	if envelope == nil {
		return nil, &ProviderError{}
	}
	if envelope.Limits().Exhausted() {
		return nil, ErrRateLimitExceeded
	}

	switch envelope.Shape() {
	case github.ShapeResults:
		edges := envelope.Edges()
		if len(edges) == 0 {
			return nil, ErrEmptyResult
		}
		return edges, nil
	case github.ShapeErrorOnly:
		return nil, &ProviderError{Message: envelope.ErrorMessage()}
	default:
		return nil, &ProviderError{}
	}
}
