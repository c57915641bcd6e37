package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/vizgen"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// DefaultServerName is the default name advertised by the MCP server
	DefaultServerName = "vizgen"
	// DefaultServerVersion is the default version advertised by the MCP server
	DefaultServerVersion = "0.1.0"
)

// Server exposes vizgen tools to MCP clients.
type Server struct {
	name    string
	version string
	logger  *slog.Logger

	tools     []vizgen.Tool
	mcpServer *server.MCPServer
}

// Option is the option for Server.
type Option func(*Server)

// WithServerInfo sets the name and version reported to MCP clients.
func WithServerInfo(name, version string) Option {
	return func(s *Server) {
		s.name = name
		s.version = version
	}
}

// WithLogger sets the logger used for tool calls and transport errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTools registers tools with the server.
func WithTools(tools ...vizgen.Tool) Option {
	return func(s *Server) {
		s.tools = append(s.tools, tools...)
	}
}

// NewServer creates an MCP server for the given tools. Every tool spec must be valid and
// tool names must be unique.
func NewServer(options ...Option) (*Server, error) {
	s := &Server{
		name:    DefaultServerName,
		version: DefaultServerVersion,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(s)
	}

	// NewToolSet rejects invalid specs and duplicate names.
	if _, err := vizgen.NewToolSet(s.tools...); err != nil {
		return nil, goerr.Wrap(err, "invalid tools for MCP server")
	}

	s.mcpServer = server.NewMCPServer(s.name, s.version,
		server.WithToolCapabilities(false),
	)

	for _, tool := range s.tools {
		mcpTool, err := specToTool(tool.Spec())
		if err != nil {
			return nil, err
		}
		s.mcpServer.AddTool(mcpTool, s.handler(tool))
	}

	s.logger.Info("MCP server created",
		"name", s.name,
		"version", s.version,
		"tools_count", len(s.tools),
	)

	return s, nil
}

// ServeStdio serves MCP over stdin and stdout until the input is closed.
func (s *Server) ServeStdio() error {
	errLogger := slog.NewLogLogger(s.logger.Handler(), slog.LevelError)
	if err := server.ServeStdio(s.mcpServer, server.WithErrorLogger(errLogger)); err != nil {
		return goerr.Wrap(err, "MCP stdio server stopped")
	}
	return nil
}

func (s *Server) handler(tool vizgen.Tool) server.ToolHandlerFunc {
	name := tool.Spec().Name

	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := s.logger.With("tool", name)
		ctx = vizgen.WithLoggerContext(ctx, logger)

		args := argsFromRequest(req)
		logger.Debug("call tool", "args", args)

		resp, err := tool.Run(ctx, args)
		if err != nil {
			logger.Warn("tool returned error", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := resultToContent(resp)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return result, nil
	}
}

func argsFromRequest(req mcp.CallToolRequest) map[string]any {
	var raw any = req.Params.Arguments
	if args, ok := raw.(map[string]any); ok && args != nil {
		return args
	}
	return map[string]any{}
}

func specToTool(spec vizgen.ToolSpec) (mcp.Tool, error) {
	schema, err := json.Marshal(spec.JSONSchema())
	if err != nil {
		return mcp.Tool{}, goerr.Wrap(err, "failed to encode input schema", goerr.V("tool", spec.Name))
	}

	return mcp.NewToolWithRawSchema(spec.Name, spec.Description, schema), nil
}

func resultToContent(resp map[string]any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode tool result")
	}
	return mcp.NewToolResultText(string(raw)), nil
}
