package mcp

import (
	"encoding/json"
	"path/filepath"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/josephgoksu/zettelwing/types"
)

// normalizeSources applies the local-first default and validates tier names.
func normalizeSources(source types.StringList) (types.StringList, error) {
	if len(source) == 0 {
		return types.StringList{"local"}, nil
	}
	for _, s := range source {
		if s != "local" && s != "registry" {
			return nil, types.NewOpError(types.CodeValidation,
				"invalid source: "+s+". Use 'local' or 'registry'", map[string]interface{}{
					"value": s,
				})
		}
	}
	return source, nil
}

// resultFor builds the dual text/structured tool result the protocol wants.
func resultFor[R any](summary string, payload R) *mcpsdk.CallToolResultFor[R] {
	text := summary
	if data, err := json.MarshalIndent(payload, "", "  "); err == nil {
		text = summary + "\n" + string(data)
	}
	return &mcpsdk.CallToolResultFor[R]{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text},
		},
		StructuredContent: payload,
	}
}

// displayPath renders a file path for tool output: project files relative to
// the project root, everything else as-is.
func displayPath(path, projectRoot string) string {
	if projectRoot == "" {
		return path
	}
	rel, err := filepath.Rel(projectRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
