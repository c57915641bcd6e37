package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/vizgen"
	"github.com/m-mizutani/vizgen/internal"
	"github.com/m-mizutani/vizgen/mcp"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

func newGeneratorTool(t *testing.T) vizgen.Tool {
	t.Helper()
	tool, err := vizgen.NewGeneratorTool(vizgen.New(vizgen.WithLogger(internal.TestLogger())))
	gt.NoError(t, err).Required()
	return tool
}

func callRequest(name string, args map[string]any) mcpgo.CallToolRequest {
	var req mcpgo.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected one content, got %d", len(result.Content))
	}

	switch v := result.Content[0].(type) {
	case mcpgo.TextContent:
		return v.Text
	case *mcpgo.TextContent:
		return v.Text
	}
	t.Fatalf("unexpected content type: %T", result.Content[0])
	return ""
}

func TestNewServer(t *testing.T) {
	t.Run("with generator tool", func(t *testing.T) {
		s, err := mcp.NewServer(
			mcp.WithTools(newGeneratorTool(t)),
			mcp.WithLogger(internal.TestLogger()),
		)
		gt.NoError(t, err)
		gt.NotNil(t, s)
	})

	t.Run("duplicate tool names", func(t *testing.T) {
		tool := newGeneratorTool(t)
		_, err := mcp.NewServer(mcp.WithTools(tool, tool))
		gt.True(t, errors.Is(err, vizgen.ErrInvalidTool))
	})
}

func TestSpecToTool(t *testing.T) {
	tool, err := mcp.SpecToTool(newGeneratorTool(t).Spec())
	gt.NoError(t, err).Required()
	gt.Equal(t, tool.Name, vizgen.GeneratorToolName)

	raw, err := json.Marshal(tool)
	gt.NoError(t, err).Required()

	var decoded struct {
		Name        string `json:"name"`
		InputSchema struct {
			Type       string                     `json:"type"`
			Properties map[string]json.RawMessage `json:"properties"`
			Required   []string                   `json:"required"`
		} `json:"inputSchema"`
	}
	gt.NoError(t, json.Unmarshal(raw, &decoded)).Required()
	gt.Equal(t, decoded.Name, vizgen.GeneratorToolName)
	gt.Equal(t, decoded.InputSchema.Type, "object")
	gt.Equal(t, decoded.InputSchema.Required, []string{vizgen.ArgConcept})
	gt.NotNil(t, decoded.InputSchema.Properties[vizgen.ArgConcept])
	gt.NotNil(t, decoded.InputSchema.Properties[vizgen.ArgOutputDir])
}

func TestHandler(t *testing.T) {
	ctx := context.Background()
	tool := newGeneratorTool(t)
	s, err := mcp.NewServer(mcp.WithTools(tool))
	gt.NoError(t, err).Required()
	handler := s.Handler(tool)

	t.Run("successful call", func(t *testing.T) {
		dir := t.TempDir()
		result, err := handler(ctx, callRequest(vizgen.GeneratorToolName, map[string]any{
			vizgen.ArgConcept:   "Gravity",
			vizgen.ArgOutputDir: dir,
		}))
		gt.NoError(t, err).Required()
		gt.False(t, result.IsError)

		resp := mcp.ContentToMap(result.Content)
		path := filepath.Join(dir, "GravityVisualization.html")
		gt.Equal(t, resp[vizgen.ResultPath], any(path))

		raw, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.Equal(t, resp[vizgen.ResultHTML], any(string(raw)))
	})

	t.Run("tool error becomes error result", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		gt.NoError(t, os.WriteFile(blocker, nil, 0644)).Required()

		result, err := handler(ctx, callRequest(vizgen.GeneratorToolName, map[string]any{
			vizgen.ArgConcept:   "Gravity",
			vizgen.ArgOutputDir: filepath.Join(blocker, "x"),
		}))
		gt.NoError(t, err)
		gt.True(t, result.IsError)
		gt.S(t, resultText(t, result)).Contains("output write failed")
	})

	t.Run("no arguments", func(t *testing.T) {
		result, err := handler(ctx, callRequest(vizgen.GeneratorToolName, nil))
		gt.NoError(t, err)
		gt.True(t, result.IsError)
		gt.S(t, resultText(t, result)).Contains("invalid tool arguments")
	})
}

func TestContentToMap(t *testing.T) {
	t.Run("when content is empty", func(t *testing.T) {
		result := mcp.ContentToMap([]mcpgo.Content{})
		gt.Nil(t, result)
	})

	t.Run("when text content is JSON", func(t *testing.T) {
		content := mcpgo.TextContent{Text: `{"key": "value"}`}
		result := mcp.ContentToMap([]mcpgo.Content{content})
		gt.Equal(t, result, map[string]any{"key": "value"})
	})

	t.Run("when text content is not JSON", func(t *testing.T) {
		content := mcpgo.TextContent{Text: "plain text"}
		result := mcp.ContentToMap([]mcpgo.Content{content})
		gt.Equal(t, result, map[string]any{"result": "plain text"})
	})

	t.Run("when multiple contents exist", func(t *testing.T) {
		contents := []mcpgo.Content{
			mcpgo.TextContent{Text: "first"},
			mcpgo.TextContent{Text: "second"},
		}
		result := mcp.ContentToMap(contents)
		gt.Equal(t, result, map[string]any{
			"content_1": "first",
			"content_2": "second",
		})
	})

	t.Run("round trip of tool result", func(t *testing.T) {
		result, err := mcp.ResultToContent(map[string]any{"path": "/tmp/out/x.html"})
		gt.NoError(t, err).Required()
		gt.Equal(t, mcp.ContentToMap(result.Content), map[string]any{"path": "/tmp/out/x.html"})
	})
}
