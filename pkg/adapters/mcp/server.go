// Package mcp exposes the model builder as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/epigraph"
	"github.com/aretw0/epigraph/internal/presentation/graph"
	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/params"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const modelURI = "epigraph://model"

// Builder compiles parameter sets into models.
type Builder interface {
	Validate(p params.Parameters) error
	Build(ctx context.Context, p params.Parameters) (*domain.Model, error)
}

// BuildSummary is the structured result of build_model.
type BuildSummary struct {
	Fingerprint  string                         `json:"fingerprint" jsonschema_description:"Cache key of the parameter set"`
	Compartments int                            `json:"compartments" jsonschema_description:"Number of compartments"`
	Transitions  int                            `json:"transitions" jsonschema_description:"Number of transitions"`
	Chains       domain.ChainLengths            `json:"chains" jsonschema_description:"Erlang chain lengths"`
	ByType       map[domain.CompartmentType]int `json:"by_type" jsonschema_description:"Compartment count per type"`
	Model        *domain.Model                  `json:"model,omitempty" jsonschema_description:"Full model when include_model is set"`
}

// Server wraps a Builder and exposes it as an MCP Server.
type Server struct {
	builder   Builder
	base      params.Parameters
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. Tool overrides apply on top of base.
func NewServer(builder Builder, base params.Parameters) *Server {
	s := &Server{
		builder:   builder,
		base:      base,
		mcpServer: server.NewMCPServer("epigraph-mcp", strings.TrimSpace(epigraph.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	overrides := mcp.WithString("overrides",
		mcp.Description(`JSON object of parameter overrides, e.g. {"beta_exp": 0.4, "initial": {"exposed": 25}}`))

	s.mcpServer.AddTool(mcp.NewTool("build_model",
		mcp.WithDescription("Build the compartment/transition graph for a parameter set and summarize it."),
		overrides,
		mcp.WithBoolean("include_model", mcp.Description("Include the full model snapshot in the result")),
	), s.handleBuildModel)

	s.mcpServer.AddTool(mcp.NewTool("validate_parameters",
		mcp.WithDescription("Check a parameter set without building the model."),
		overrides,
	), s.handleValidate)

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the model as a Mermaid flowchart."),
		overrides,
		mcp.WithString("highlight", mcp.Description("Comma separated compartment names to highlight")),
	), s.handleGetGraph)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(modelURI, "Base Model",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		m, err := s.builder.Build(ctx, s.base)
		if err != nil {
			return nil, fmt.Errorf("failed to build model: %w", err)
		}
		jsonBytes, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      modelURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) params(args map[string]any) (params.Parameters, error) {
	switch raw := args["overrides"].(type) {
	case nil:
		return s.base, nil
	case map[string]any:
		return params.Decode(s.base, raw)
	case string:
		if strings.TrimSpace(raw) == "" {
			return s.base, nil
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return params.Parameters{}, fmt.Errorf("overrides must be a JSON object: %w", err)
		}
		return params.Decode(s.base, m)
	default:
		return params.Parameters{}, fmt.Errorf("overrides must be a JSON object, got %T", raw)
	}
}

func (s *Server) handleBuildModel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	p, err := s.params(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.builder.Build(ctx, p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build failed: %v", err)), nil
	}

	summary := BuildSummary{
		Fingerprint:  p.Fingerprint(),
		Compartments: m.Len(),
		Transitions:  len(m.Transitions()),
		Chains:       m.ChainLengths(),
		ByType:       m.CountByType(),
	}
	if include, _ := args["include_model"].(bool); include {
		summary.Model = m
	}
	jsonBytes, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := s.params(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.builder.Validate(p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("valid"), nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	p, err := s.params(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.builder.Build(ctx, p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build failed: %v", err)), nil
	}

	overlay := &graph.GraphOverlay{}
	if h, _ := args["highlight"].(string); h != "" {
		for _, name := range strings.Split(h, ",") {
			overlay.Highlighted = append(overlay.Highlighted, strings.TrimSpace(name))
		}
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(m, overlay)), nil
}
