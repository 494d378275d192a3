/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package mcp

import (
	"context"
	"encoding/json"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/josephgoksu/zettelwing/internal/analytics"
	"github.com/josephgoksu/zettelwing/registry"
	"github.com/josephgoksu/zettelwing/store"
)

// Deps are the storage backends the tool handlers operate on.
type Deps struct {
	Local    *store.LocalStore
	Registry *registry.Client
}

// RegisterTools registers the five knowledge tools on the server.
func RegisterTools(server *mcpsdk.Server, deps Deps) error {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "search",
		Description: "Search knowledge entries with explicit source selection. Args: query (required), source [local|registry|both, default local], category, entry_type, tags[], limit (default 10). Returns ranked results with relevance scores.",
	}, instrumented("search", searchHandler(deps)))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "get",
		Description: "Get a knowledge entry by zettel_id. Args: zettel_id (required), source [local|registry|both, default local], include_relationships, include_backlinks, destination [user|project] to download a registry entry locally.",
	}, instrumented("get", getHandler(deps)))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "manage",
		Description: "Create, update, delete, or publish knowledge entries. Args: action [create|update|delete|publish], zettel_id (required), then per action: title/content/entry_type/category/tags/location (create), partial fields (update), source/location/confirm/cascade_relationships (delete), version (publish).",
	}, instrumented("manage", manageHandler(deps)))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "link",
		Description: "Manage relationships and collections in the registry. Args: action [link|create_collection|get_relationships], from_zettel_id/to_zettel_id/relationship_type (link), name/description/zettel_ids/collection_type (create_collection), zettel_id (get_relationships).",
	}, instrumented("link", linkHandler(deps)))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "help",
		Description: "Get workflow guidance and examples for the knowledge tools. Args: query (what you need help with), context (optional).",
	}, instrumented("help", helpHandler()))

	logInfo("registered 5 knowledge tools (version " + hooks.GetVersion() + ")")

	return nil
}

// instrumented wraps a handler to record every invocation in the execution
// history. Recording failures are swallowed; they must not fail the call.
func instrumented[P, R any](name string, fn mcpsdk.ToolHandlerFor[P, R]) mcpsdk.ToolHandlerFor[P, R] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[P]) (*mcpsdk.CallToolResultFor[R], error) {
		start := time.Now()
		result, err := fn(ctx, ss, params)

		exec := analytics.Execution{
			Timestamp:   start,
			Tool:        name,
			DurationSec: time.Since(start).Seconds(),
			Inputs:      analytics.Summarize(toMap(params.Arguments)),
		}
		if err != nil {
			exec.Status = "error"
			exec.Error = err.Error()
		} else {
			exec.Status = "success"
			if result != nil {
				exec.Outputs = analytics.Summarize(toMap(result.StructuredContent))
			}
		}
		hooks.RecordExecution(exec)

		return result, err
	}
}

func toMap(v interface{}) map[string]interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}
