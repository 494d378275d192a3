package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/josephgoksu/zettelwing/models"
	"github.com/josephgoksu/zettelwing/registry"
	"github.com/josephgoksu/zettelwing/types"
)

// linkHandler manages relationships and collections. All three actions
// operate on the registry tier only.
func linkHandler(deps Deps) mcpsdk.ToolHandlerFor[types.LinkParams, types.LinkResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.LinkParams]) (*mcpsdk.CallToolResultFor[types.LinkResponse], error) {
		args := params.Arguments
		logToolCall("link", args)

		switch args.Action {
		case "link":
			return linkEntries(ctx, deps, args)
		case "create_collection":
			return createCollection(ctx, deps, args)
		case "get_relationships":
			return getRelationships(ctx, deps, args)
		case "":
			return nil, types.NewOpError(types.CodeValidation,
				"action is required (link, create_collection, or get_relationships)", nil)
		default:
			return nil, types.NewOpError(types.CodeValidation,
				"Unknown action: "+args.Action, map[string]interface{}{
					"valid_actions": []string{"link", "create_collection", "get_relationships"},
				})
		}
	}
}

func linkEntries(ctx context.Context, deps Deps, args types.LinkParams) (*mcpsdk.CallToolResultFor[types.LinkResponse], error) {
	if args.FromZettelID == "" || args.ToZettelID == "" {
		return nil, types.NewOpError(types.CodeValidation, "from_zettel_id and to_zettel_id are required", nil)
	}

	relType := args.RelationshipType
	if relType == "" {
		relType = string(models.RelReferences)
	}
	if !models.ValidRelationshipType(relType) {
		return nil, types.NewOpError(types.CodeValidation,
			"Invalid relationship_type: "+relType, map[string]interface{}{
				"valid_types": models.RelationshipTypes,
			})
	}

	err := deps.Registry.CreateRelationship(ctx, models.Relationship{
		FromZettelID: args.FromZettelID,
		ToZettelID:   args.ToZettelID,
		Type:         models.RelationshipType(relType),
	})
	if err != nil {
		return nil, registryOpError(err)
	}

	logInfo(fmt.Sprintf("linked %s -> %s (%s)", args.FromZettelID, args.ToZettelID, relType))
	return resultFor(fmt.Sprintf("Linked %s to %s", args.FromZettelID, args.ToZettelID), types.LinkResponse{
		Status: "success",
		Action: "link",
		Relationship: &types.RelationshipRef{
			FromZettelID:     args.FromZettelID,
			ToZettelID:       args.ToZettelID,
			RelationshipType: relType,
		},
	}), nil
}

func createCollection(ctx context.Context, deps Deps, args types.LinkParams) (*mcpsdk.CallToolResultFor[types.LinkResponse], error) {
	if strings.TrimSpace(args.Name) == "" {
		return nil, types.NewOpError(types.CodeValidation, "name is required for create_collection", nil)
	}

	collType := args.CollectionType
	if collType == "" {
		collType = string(models.CollTopic)
	}
	if !models.ValidCollectionType(collType) {
		return nil, types.NewOpError(types.CodeValidation,
			"Invalid collection_type: "+collType, map[string]interface{}{
				"valid_types": models.CollectionTypes,
			})
	}

	id, err := deps.Registry.CreateCollection(ctx, models.Collection{
		Name:        args.Name,
		Description: args.Description,
		ZettelIDs:   args.ZettelIDs,
		Type:        models.CollectionType(collType),
	})
	if err != nil {
		return nil, registryOpError(err)
	}

	return resultFor("Created collection "+args.Name, types.LinkResponse{
		Status:       "success",
		Action:       "create_collection",
		CollectionID: id,
	}), nil
}

func getRelationships(ctx context.Context, deps Deps, args types.LinkParams) (*mcpsdk.CallToolResultFor[types.LinkResponse], error) {
	if strings.TrimSpace(args.ZettelID) == "" {
		return nil, types.NewOpError(types.CodeValidation, "zettel_id is required for get_relationships", nil)
	}

	set, err := deps.Registry.Relationships(ctx, args.ZettelID)
	if err != nil {
		return nil, registryOpError(err)
	}

	return resultFor(fmt.Sprintf("Relationships for %s", args.ZettelID), types.LinkResponse{
		ZettelID:      args.ZettelID,
		Relationships: set,
	}), nil
}

func registryOpError(err error) error {
	if errors.Is(err, registry.ErrUnavailable) {
		return types.NewOpError(types.CodeRegistryUnavailable, err.Error(), nil)
	}
	return types.NewOpError(types.CodeInternal, err.Error(), nil)
}
