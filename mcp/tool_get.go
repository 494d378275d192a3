package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/josephgoksu/zettelwing/models"
	"github.com/josephgoksu/zettelwing/store"
	"github.com/josephgoksu/zettelwing/types"
)

// getHandler resolves an entry from the selected tiers, optionally
// downloading a registry copy into local storage.
func getHandler(deps Deps) mcpsdk.ToolHandlerFor[types.GetParams, types.EntryResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.GetParams]) (*mcpsdk.CallToolResultFor[types.EntryResponse], error) {
		args := params.Arguments
		logToolCall("get", args)

		if strings.TrimSpace(args.ZettelID) == "" {
			return nil, types.NewOpError(types.CodeValidation, "zettel_id is required", nil)
		}
		sources, err := normalizeSources(args.Source)
		if err != nil {
			return nil, err
		}
		for _, d := range args.Destination {
			if d != "project" && d != "user" {
				return nil, types.NewOpError(types.CodeValidation,
					"invalid destination: "+d+". Use 'project' or 'user'", nil)
			}
		}

		var entry *models.Entry
		var sourceLocation string

		if sources.Contains("local") {
			doc, loc, err := deps.Local.Read(args.ZettelID, "")
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, types.NewOpError(types.CodeInternal, err.Error(), nil)
			}
			if err == nil {
				e := doc.Entry
				entry = &e
				sourceLocation = string(loc.Tier)
			}
		}

		var downloadedTo types.StringList
		if entry == nil && sources.Contains("registry") {
			registryEntry, err := deps.Registry.Get(ctx, args.ZettelID)
			if err != nil {
				return nil, types.NewOpError(types.CodeInternal, err.Error(), nil)
			}
			if registryEntry != nil {
				entry = registryEntry
				sourceLocation = "registry"

				// Registry rows may lack a category; derive one from the
				// entry type so downloads land in a sensible directory.
				if entry.Category == "" {
					entryType := string(entry.EntryType)
					if entryType == "" {
						entryType = "learning"
					}
					entry.Category = store.CategoryForType(entryType)
				}

				for _, dest := range args.Destination {
					path, err := deps.Local.Write(*entry, store.Tier(dest))
					if err != nil {
						return nil, types.NewOpError(types.CodeInternal,
							fmt.Sprintf("download to %s failed: %v", dest, err), nil)
					}
					if dest == "project" {
						path = displayPath(path, deps.Local.ProjectRoot())
					}
					downloadedTo = append(downloadedTo, path)
				}
			}
		}

		if entry == nil {
			return nil, types.NewOpError(types.CodeNotFound,
				fmt.Sprintf("Entry '%s' not found in specified source(s)", args.ZettelID), map[string]interface{}{
					"zettel_id": args.ZettelID,
					"source":    sources,
				})
		}

		response := types.EntryResponse{
			ZettelID:       entry.ZettelID,
			Title:          entry.Title,
			Content:        entry.Content,
			EntryType:      string(entry.EntryType),
			Category:       entry.Category,
			Tags:           orEmptyTags(entry.Tags),
			SourceLocation: sourceLocation,
			DownloadedTo:   downloadedTo,
		}

		// Relationship data lives only in the registry.
		if (args.IncludeRelationships || args.IncludeBacklinks) && sources.Contains("registry") {
			set, err := deps.Registry.Relationships(ctx, args.ZettelID)
			if err != nil {
				logError(fmt.Errorf("get relationships: %w", err))
			} else {
				if args.IncludeRelationships {
					response.Relationships = set.Outgoing
				}
				if args.IncludeBacklinks {
					response.Backlinks = set.Incoming
				}
			}
		}

		return resultFor(fmt.Sprintf("Entry '%s' (%s)", entry.ZettelID, sourceLocation), response), nil
	}
}

func orEmptyTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
