package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/josephgoksu/zettelwing/models"
	"github.com/josephgoksu/zettelwing/registry"
	"github.com/josephgoksu/zettelwing/store"
	"github.com/josephgoksu/zettelwing/types"
)

// manageHandler dispatches the create, update, delete and publish actions.
func manageHandler(deps Deps) mcpsdk.ToolHandlerFor[types.ManageParams, types.ManageResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ManageParams]) (*mcpsdk.CallToolResultFor[types.ManageResponse], error) {
		args := params.Arguments
		logToolCall("manage", args)

		if strings.TrimSpace(args.Action) == "" {
			return nil, types.NewOpError(types.CodeValidation,
				"action is required (create, update, delete, or publish)", nil)
		}
		if strings.TrimSpace(args.ZettelID) == "" {
			return nil, types.NewOpError(types.CodeValidation, "zettel_id is required", nil)
		}

		switch args.Action {
		case "create":
			return createEntry(deps, args)
		case "update":
			return updateEntry(deps, args)
		case "delete":
			return deleteEntry(ctx, deps, args)
		case "publish":
			return publishEntry(ctx, deps, args)
		default:
			return nil, types.NewOpError(types.CodeValidation,
				"Unknown action: "+args.Action, map[string]interface{}{
					"valid_actions": []string{"create", "update", "delete", "publish"},
				})
		}
	}
}

func createEntry(deps Deps, args types.ManageParams) (*mcpsdk.CallToolResultFor[types.ManageResponse], error) {
	title := strPtr(args.Title)
	content := strPtr(args.Content)
	if title == "" || content == "" {
		return nil, types.NewOpError(types.CodeValidation, "title and content are required for create", nil)
	}

	entryType := args.EntryType
	if entryType == "" {
		entryType = "learning"
	}

	location := "project"
	if len(args.Location) > 0 {
		location = args.Location[0]
	}
	if location != "project" && location != "user" {
		return nil, types.NewOpError(types.CodeValidation,
			"Invalid location: "+location+". Use 'project' or 'user'", nil)
	}

	entry := models.Entry{
		ZettelID:   args.ZettelID,
		Title:      title,
		Content:    content,
		EntryType:  models.EntryType(entryType),
		Category:   args.Category,
		Tags:       args.Tags,
		SourceType: strPtr(args.SourceType),
		SourceURL:  strPtr(args.SourceURL),
	}
	if err := models.ValidateStruct(entry); err != nil {
		return nil, types.NewOpError(types.CodeValidation, err.Error(), nil)
	}

	path, err := deps.Local.Create(entry, store.Tier(location))
	if err != nil {
		if errors.Is(err, store.ErrExists) {
			return nil, types.NewOpError(types.CodeConflict,
				fmt.Sprintf("Entry '%s' already exists", args.ZettelID), map[string]interface{}{
					"zettel_id": args.ZettelID,
				})
		}
		return nil, types.NewOpError(types.CodeInternal, err.Error(), nil)
	}

	category := entry.Category
	if category != "" {
		category = store.SanitizeCategory(category)
	} else {
		category = store.CategoryForType(entryType)
	}

	logInfo(fmt.Sprintf("created entry %s in %s/%s", args.ZettelID, location, category))
	return resultFor("Created entry "+args.ZettelID, types.ManageResponse{
		Status:   "success",
		Action:   "create",
		ZettelID: args.ZettelID,
		Location: location,
		Category: category,
		Path:     displayPath(path, deps.Local.ProjectRoot()),
	}), nil
}

func updateEntry(deps Deps, args types.ManageParams) (*mcpsdk.CallToolResultFor[types.ManageResponse], error) {
	upd := store.EntryUpdate{
		Title:      args.Title,
		Content:    args.Content,
		SourceType: args.SourceType,
		SourceURL:  args.SourceURL,
	}
	if args.Tags != nil {
		upd.Tags = args.Tags
		upd.TagsSet = true
	}

	loc, err := deps.Local.Update(args.ZettelID, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, types.NewOpError(types.CodeNotFound,
				fmt.Sprintf("Entry '%s' not found in local storage", args.ZettelID), nil)
		}
		return nil, types.NewOpError(types.CodeInternal, err.Error(), nil)
	}

	return resultFor("Updated entry "+args.ZettelID, types.ManageResponse{
		Status:   "success",
		Action:   "update",
		ZettelID: args.ZettelID,
		Location: string(loc.Tier),
		Path:     displayPath(loc.Path, deps.Local.ProjectRoot()),
	}), nil
}

func deleteEntry(ctx context.Context, deps Deps, args types.ManageParams) (*mcpsdk.CallToolResultFor[types.ManageResponse], error) {
	if !args.Confirm {
		return nil, types.NewOpError(types.CodeValidation, "confirm: true is required for delete", nil)
	}
	sources, err := normalizeSources(args.Source)
	if err != nil {
		return nil, err
	}

	deletedFrom := types.DeletedFrom{Local: []string{}}
	errs := map[string]string{}
	relationshipsDeleted := 0

	if sources.Contains("local") {
		locations := args.Location
		if len(locations) == 0 {
			locations = types.StringList{"project", "user"}
		}
		for _, loc := range locations {
			if loc != "project" && loc != "user" {
				errs["local_"+loc] = "Invalid location: " + loc + ". Use 'project' or 'user'"
				continue
			}
			removed, err := deps.Local.Delete(args.ZettelID, store.Tier(loc))
			if err != nil {
				errs["local_"+loc] = err.Error()
				continue
			}
			if removed {
				deletedFrom.Local = append(deletedFrom.Local, loc)
			}
		}
	}

	if sources.Contains("registry") {
		deleted, err := deps.Registry.Delete(ctx, args.ZettelID, args.CascadeRelationships)
		if err != nil {
			errs["registry"] = err.Error()
		} else {
			deletedFrom.Registry = true
			relationshipsDeleted = deleted
		}
	}

	status := "success"
	if len(errs) > 0 {
		if len(deletedFrom.Local) == 0 && !deletedFrom.Registry {
			status = "error"
		} else {
			status = "partial"
		}
	}

	response := types.ManageResponse{
		Status:               status,
		Action:               "delete",
		ZettelID:             args.ZettelID,
		DeletedFrom:          &deletedFrom,
		RelationshipsDeleted: relationshipsDeleted,
	}
	if len(errs) > 0 {
		response.Errors = errs
	}

	return resultFor(fmt.Sprintf("Delete %s: %s", args.ZettelID, status), response), nil
}

func publishEntry(ctx context.Context, deps Deps, args types.ManageParams) (*mcpsdk.CallToolResultFor[types.ManageResponse], error) {
	doc, loc, err := deps.Local.Read(args.ZettelID, "")
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, types.NewOpError(types.CodeNotFound,
				fmt.Sprintf("Entry '%s' not found in local storage", args.ZettelID), nil)
		}
		return nil, types.NewOpError(types.CodeInternal, err.Error(), nil)
	}

	// Hand-edited files can be missing required fields; refuse to publish those.
	if err := models.ValidateStruct(doc.Entry); err != nil {
		return nil, types.NewOpError(types.CodeValidation,
			fmt.Sprintf("Entry '%s' is not publishable: %s", args.ZettelID, err), nil)
	}

	result, err := deps.Registry.Publish(ctx, doc.Entry, args.Version)
	if err != nil {
		if errors.Is(err, registry.ErrUnavailable) {
			return nil, types.NewOpError(types.CodeRegistryUnavailable, err.Error(), nil)
		}
		return nil, types.NewOpError(types.CodeInternal, err.Error(), nil)
	}

	logInfo(fmt.Sprintf("published %s version %s", result.ZettelID, result.Version))
	return resultFor(fmt.Sprintf("Published %s (version %s)", result.ZettelID, result.Version), types.ManageResponse{
		Status:      "success",
		Action:      "publish",
		ZettelID:    args.ZettelID,
		Version:     result.Version,
		PublishedTo: "registry",
		Location:    string(loc.Tier),
	}), nil
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
