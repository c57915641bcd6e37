package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/vizgen"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var (
	SpecToTool      = specToTool
	ResultToContent = resultToContent
)

func (s *Server) Handler(tool vizgen.Tool) server.ToolHandlerFunc {
	return s.handler(tool)
}

// ContentToMap decodes tool result content the way an MCP client reads it. A JSON object
// text is decoded as is; other text is placed under "result". Multiple contents are
// stored as content_1, content_2 and so on.
func ContentToMap(contents []mcp.Content) map[string]any {
	var texts []string
	for _, c := range contents {
		switch v := c.(type) {
		case mcp.TextContent:
			texts = append(texts, v.Text)
		case *mcp.TextContent:
			texts = append(texts, v.Text)
		}
	}

	switch len(texts) {
	case 0:
		return nil
	case 1:
		var v any
		if err := json.Unmarshal([]byte(texts[0]), &v); err == nil {
			if m, ok := v.(map[string]any); ok {
				return m
			}
			return map[string]any{"result": v}
		}
		return map[string]any{"result": texts[0]}
	}

	result := make(map[string]any, len(texts))
	for i, text := range texts {
		result[fmt.Sprintf("content_%d", i+1)] = text
	}
	return result
}
