package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/epigraph"
	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/params"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	p := params.Default()
	p.SamplingInterval = 1
	return NewServer(epigraph.New(), p)
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestBuildModelTool(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	t.Run("Base Parameters", func(t *testing.T) {
		res, err := s.handleBuildModel(ctx, call(nil))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))

		var summary BuildSummary
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &summary))
		assert.Equal(t, 25, summary.Compartments)
		assert.Equal(t, 56, summary.Transitions)
		assert.Equal(t, domain.ChainLengths{Vaccination: 3, Exposure: 3, Infection: 5}, summary.Chains)
		assert.Equal(t, 10, summary.ByType[domain.CompartmentInfected])
		assert.Nil(t, summary.Model)
	})

	t.Run("String Overrides With Model", func(t *testing.T) {
		res, err := s.handleBuildModel(ctx, call(map[string]any{
			"overrides":     `{"t_exp": 0.5, "initial": {"exposed": 0, "infected": 10}}`,
			"include_model": true,
		}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))

		var summary BuildSummary
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &summary))
		assert.Equal(t, 19, summary.Compartments)
		require.NotNil(t, summary.Model)
		assert.Equal(t, 19, summary.Model.Len())
	})

	t.Run("Object Overrides", func(t *testing.T) {
		res, err := s.handleBuildModel(ctx, call(map[string]any{
			"overrides": map[string]any{"initial": map[string]any{"exposed": 3}},
		}))
		require.NoError(t, err)
		assert.False(t, res.IsError, text(t, res))
	})

	t.Run("Invalid Configuration", func(t *testing.T) {
		res, err := s.handleBuildModel(ctx, call(map[string]any{"overrides": `{"beta_exp": 0}`}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "cannot be zero")
	})

	t.Run("Malformed Overrides", func(t *testing.T) {
		res, err := s.handleBuildModel(ctx, call(map[string]any{"overrides": `[1, 2]`}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestValidateTool(t *testing.T) {
	s := newTestServer()

	res, err := s.handleValidate(context.Background(), call(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "valid", text(t, res))

	res, err = s.handleValidate(context.Background(), call(map[string]any{"overrides": `{"beta_inf": 0.2}`}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "cannot be non-zero")
}

func TestGetGraphTool(t *testing.T) {
	s := newTestServer()

	res, err := s.handleGetGraph(context.Background(), call(map[string]any{"highlight": "Exposed_1, Infected_1"}))
	require.NoError(t, err)
	out := text(t, res)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "class Exposed_1 highlight;")
	assert.Contains(t, out, "class Infected_1 highlight;")
}
