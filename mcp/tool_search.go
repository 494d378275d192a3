package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/josephgoksu/zettelwing/models"
	"github.com/josephgoksu/zettelwing/registry"
	"github.com/josephgoksu/zettelwing/store"
	"github.com/josephgoksu/zettelwing/types"
)

const defaultSearchLimit = 10

// searchHandler searches the selected tiers and merges results into one
// ranked list.
func searchHandler(deps Deps) mcpsdk.ToolHandlerFor[types.SearchParams, types.SearchResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.SearchParams]) (*mcpsdk.CallToolResultFor[types.SearchResponse], error) {
		args := params.Arguments
		logToolCall("search", args)

		if strings.TrimSpace(args.Query) == "" {
			return nil, types.NewOpError(types.CodeValidation, "query is required", nil)
		}
		sources, err := normalizeSources(args.Source)
		if err != nil {
			return nil, err
		}

		limit := args.Limit
		if limit <= 0 {
			limit = defaultSearchLimit
		}

		var results []models.SearchResult

		if sources.Contains("local") {
			localResults, err := deps.Local.Search(store.SearchQuery{
				Query:     args.Query,
				Category:  args.Category,
				EntryType: args.EntryType,
				Tags:      args.Tags,
				Limit:     limit,
			})
			if err != nil {
				return nil, types.NewOpError(types.CodeInternal, fmt.Sprintf("local search failed: %v", err), nil)
			}
			results = append(results, localResults...)
		}

		if sources.Contains("registry") {
			registryResults, err := deps.Registry.Search(ctx, args.Query, registry.SearchFilter{
				Category:  args.Category,
				EntryType: args.EntryType,
				Tags:      args.Tags,
				Limit:     limit,
			})
			if err != nil {
				// A broken registry must not take local results down with it.
				logError(fmt.Errorf("registry search: %w", err))
			} else {
				results = append(results, registryResults...)
			}
		}

		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RelevanceScore > results[j].RelevanceScore
		})
		if len(results) > limit {
			results = results[:limit]
		}

		response := types.SearchResponse{
			Query:        args.Query,
			Source:       sources,
			ResultsCount: len(results),
			Results:      make([]types.SearchResultItem, 0, len(results)),
		}
		for _, r := range results {
			response.Results = append(response.Results, types.SearchResultItem{
				ZettelID:       r.ZettelID,
				Title:          r.Title,
				EntryType:      string(r.EntryType),
				Category:       r.Category,
				Tags:           r.Tags,
				SourceLocation: r.SourceLocation,
				RelevanceScore: r.RelevanceScore,
				Snippet:        r.Snippet,
			})
		}

		logInfo(fmt.Sprintf("search %q: %d result(s)", args.Query, len(results)))
		return resultFor(fmt.Sprintf("Found %d entries for %q", len(results), args.Query), response), nil
	}
}
