package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/locktivity/epack-collector-github-search/internal/github"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTransport implements Transport for testing.
type mockTransport struct {
	envelope *github.Envelope
	err      error
	queries  []string
}

func (m *mockTransport) Execute(ctx context.Context, query string) (*github.Envelope, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.envelope, nil
}

func envelopeFromJSON(t *testing.T, raw string) *github.Envelope {
	t.Helper()
	var envelope github.Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &envelope))
	return &envelope
}

const scenarioA = `{
	"rateLimit": {"remaining": 1},
	"data": {"search": {"edges": [{"node": {
		"parent": null,
		"name": "x",
		"nameWithOwner": "o/x",
		"releases": {"nodes": []},
		"languages": {"nodes": [{"name": "go"}]},
		"repositoryTopics": {"nodes": []},
		"stargazers": {"totalCount": 5},
		"forkCount": 0,
		"diskUsage": 10,
		"description": null,
		"url": "u",
		"homepageUrl": ""
	}}]}}
}`

const scenarioB = `{
	"rateLimit": {"remaining": 1},
	"data": {"search": {"edges": [{"node": {
		"parent": {"nameWithOwner": "o/parent"},
		"name": "x",
		"nameWithOwner": "o/x",
		"releases": {"nodes": []},
		"languages": {"nodes": [{"name": "go"}]},
		"repositoryTopics": {"nodes": []},
		"stargazers": {"totalCount": 5},
		"forkCount": 0,
		"diskUsage": 10,
		"description": null,
		"url": "u",
		"homepageUrl": ""
	}}]}}
}`

func TestFetchEdges_Validation(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantErr   error
		wantEdges int
	}{
		{
			name:      "results",
			response:  scenarioA,
			wantEdges: 1,
		},
		{
			name:      "rate limit without remaining",
			response:  `{"rateLimit": {}, "data": {"search": {"edges": [{"node": {"name": "x"}}]}}}`,
			wantEdges: 1,
		},
		{
			name:      "rate limit with null remaining",
			response:  `{"rateLimit": {"remaining": null, "cost": 1}, "data": {"search": {"edges": [{"node": {"name": "x"}}]}}}`,
			wantEdges: 1,
		},
		{
			name:      "null rate limit",
			response:  `{"rateLimit": null, "data": {"search": {"edges": [{"node": {"name": "x"}}]}}}`,
			wantEdges: 1,
		},
		{
			name:     "rate limit exhausted without data",
			response: `{"rateLimit": {"cost": 1, "remaining": 0}}`,
			wantErr:  ErrRateLimitExceeded,
		},
		{
			name:     "rate limit exhausted wins over results",
			response: `{"rateLimit": {"remaining": 0}, "data": {"search": {"edges": [{"node": {"name": "x"}}]}}}`,
			wantErr:  ErrRateLimitExceeded,
		},
		{
			name:     "nested rate limit exhausted",
			response: `{"data": {"rateLimit": {"remaining": 0}, "search": {"edges": [{"node": {"name": "x"}}]}}}`,
			wantErr:  ErrRateLimitExceeded,
		},
		{
			name:     "empty result set",
			response: `{"data": {"search": {"edges": []}}}`,
			wantErr:  ErrEmptyResult,
		},
		{
			name:     "empty result set with budget left",
			response: `{"rateLimit": {"remaining": 50}, "data": {"search": {"edges": []}}}`,
			wantErr:  ErrEmptyResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &mockTransport{envelope: envelopeFromJSON(t, tt.response)}
			edges, err := NewWithClient("q", transport).FetchEdges(context.Background())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, edges)
				return
			}
			require.NoError(t, err)
			assert.Len(t, edges, tt.wantEdges)
		})
	}
}

func TestFetchEdges_ProviderError(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantMessage string
	}{
		{"message only", `{"message": "Bad credentials"}`, "Bad credentials"},
		{"graphql errors", `{"errors": [{"message": "Something went wrong"}]}`, "Something went wrong"},
		{"empty object", `{}`, ""},
		{"data without search", `{"data": {}}`, ""},
		{"null edges", `{"rateLimit": {"remaining": 3}, "data": {"search": {"edges": null}}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &mockTransport{envelope: envelopeFromJSON(t, tt.response)}
			edges, err := NewWithClient("q", transport).FetchEdges(context.Background())

			var providerErr *ProviderError
			require.ErrorAs(t, err, &providerErr)
			assert.Equal(t, tt.wantMessage, providerErr.Message)
			assert.Nil(t, edges)
			assert.NotErrorIs(t, err, ErrRateLimitExceeded)
			assert.NotErrorIs(t, err, ErrEmptyResult)
		})
	}
}

func TestFetchEdges_NilEnvelope(t *testing.T) {
	_, err := NewWithClient("q", &mockTransport{}).FetchEdges(context.Background())

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "github error: malformed response", err.Error())
}

func TestFetchEdges_TransportError(t *testing.T) {
	networkErr := errors.New("dial tcp: connection refused")
	transport := &mockTransport{err: networkErr}

	_, err := NewWithClient("q", transport).FetchEdges(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, networkErr)
	assert.Equal(t, "github transport: dial tcp: connection refused", err.Error())
}

func TestFetchEdges_PreservesOrder(t *testing.T) {
	transport := &mockTransport{envelope: envelopeFromJSON(t, `{
		"rateLimit": {"remaining": 10},
		"data": {"search": {"edges": [
			{"node": {"name": "c"}},
			{"node": {"name": "a", "parent": {"nameWithOwner": "p/a"}}},
			{"node": {"name": "b"}}
		]}}
	}`)}

	edges, err := NewWithClient("q", transport).FetchEdges(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(edges))
	for _, edge := range edges {
		names = append(names, edge.Node.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestFetchEdges_SendsBuiltQuery(t *testing.T) {
	transport := &mockTransport{envelope: envelopeFromJSON(t, scenarioA)}

	_, err := NewWithClient("language:go", transport).FetchEdges(context.Background())
	require.NoError(t, err)

	require.Len(t, transport.queries, 1)
	assert.Equal(t, BuildQuery("language:go"), transport.queries[0])
}

func TestGetDisplayRecords_ScenarioA(t *testing.T) {
	transport := &mockTransport{envelope: envelopeFromJSON(t, scenarioA)}

	records := NewWithClient("q", transport).GetDisplayRecords(context.Background())

	require.Len(t, records, 1)
	record := records[0]
	assert.Equal(t, "github", record.Platform)
	assert.Equal(t, "x", record.Title)
	assert.Equal(t, "github.com > o/x", record.Subtitle)
	assert.Equal(t, "u", record.Link)
	assert.Equal(t, []string{"GO"}, record.Languages)
	assert.Nil(t, record.LatestRelease)
	assert.Nil(t, record.Description)
	assert.Equal(t, 5, record.Stars)
	assert.Equal(t, 0, record.Forks)
	assert.Equal(t, 10, record.DiskUsageKB)
	assert.Empty(t, record.Topics)
}

func TestGetDisplayRecords_ScenarioB(t *testing.T) {
	transport := &mockTransport{envelope: envelopeFromJSON(t, scenarioB)}

	records := NewWithClient("q", transport).GetDisplayRecords(context.Background())

	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestGetDisplayRecords_SwallowsErrors(t *testing.T) {
	tests := []struct {
		name      string
		transport *mockTransport
	}{
		{"rate limit exhausted", &mockTransport{envelope: envelopeFromJSON(t, `{"rateLimit": {"remaining": 0}}`)}},
		{"empty result set", &mockTransport{envelope: envelopeFromJSON(t, `{"data": {"search": {"edges": []}}}`)}},
		{"provider error", &mockTransport{envelope: envelopeFromJSON(t, `{"message": "Bad credentials"}`)}},
		{"transport error", &mockTransport{err: errors.New("timeout")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			pipeline := NewWithClient("q", tt.transport).WithLogger(zerolog.New(&buf))

			records := pipeline.GetDisplayRecords(context.Background())

			assert.NotNil(t, records)
			assert.Empty(t, records)
			assert.Contains(t, buf.String(), `"level":"warn"`)
			assert.Contains(t, buf.String(), "Search failed")
		})
	}
}

func TestGetDisplayRecords_ScenarioC(t *testing.T) {
	transport := &mockTransport{envelope: envelopeFromJSON(t, `{"rateLimit": {"remaining": 0}}`)}
	pipeline := NewWithClient("q", transport)

	assert.Empty(t, pipeline.GetDisplayRecords(context.Background()))

	_, err := pipeline.FetchEdges(context.Background())
	assert.ErrorIs(t, err, ErrRateLimitExceeded)
}

func TestGetDisplayRecords_ScenarioD(t *testing.T) {
	transport := &mockTransport{envelope: envelopeFromJSON(t, `{"data": {"search": {"edges": []}}}`)}
	pipeline := NewWithClient("q", transport)

	_, err := pipeline.FetchEdges(context.Background())
	assert.ErrorIs(t, err, ErrEmptyResult)

	assert.Empty(t, pipeline.GetDisplayRecords(context.Background()))
}

func TestGetDisplayRecords_IndependentCalls(t *testing.T) {
	transport := &mockTransport{envelope: envelopeFromJSON(t, scenarioA)}
	pipeline := NewWithClient("q", transport)

	first := pipeline.GetDisplayRecords(context.Background())
	second := pipeline.GetDisplayRecords(context.Background())

	assert.Equal(t, first, second)
	assert.Len(t, transport.queries, 2, "each call hits the transport")
}

func TestNew(t *testing.T) {
	pipeline := New("language:go", "test-token")

	require.NotNil(t, pipeline)
	assert.Equal(t, "language:go", pipeline.Expression())
	assert.NotNil(t, pipeline.transport)
}
