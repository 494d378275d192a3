package mcp

import (
	"context"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/josephgoksu/zettelwing/types"
)

// helpHandler returns workflow guidance. Topics are picked by keyword; an
// unrecognized query gets the general overview.
func helpHandler() mcpsdk.ToolHandlerFor[types.HelpParams, types.HelpResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.HelpParams]) (*mcpsdk.CallToolResultFor[types.HelpResponse], error) {
		args := params.Arguments
		logToolCall("help", args)

		query := strings.ToLower(args.Query)

		var response types.HelpResponse
		switch {
		case containsAny(query, "create", "new entry"):
			response = helpCreate()
		case containsAny(query, "search", "find"):
			response = helpSearch()
		case containsAny(query, "delete", "remove"):
			response = helpDelete()
		case containsAny(query, "link", "relationship"):
			response = helpLink()
		case containsAny(query, "publish", "share"):
			response = helpPublish()
		case containsAny(query, "source", "local", "registry"):
			response = helpSources()
		default:
			response = helpGeneral()
		}

		return resultFor(response.Topic, response), nil
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func helpCreate() types.HelpResponse {
	return types.HelpResponse{
		Topic: "Creating Knowledge Entries",
		Workflow: []string{
			"1. Search first to avoid duplicates: search({'query': 'your topic', 'source': 'local'})",
			"2. Create entry: manage({'action': 'create', 'zettel_id': '042-your-id', 'title': '...', 'content': '...', 'entry_type': 'pattern', 'location': 'project'})",
			"3. Link to related entries: link({'action': 'link', 'from_zettel_id': '042-your-id', 'to_zettel_id': '043-related', 'relationship_type': 'references'})",
		},
		Examples: []types.HelpExample{
			{
				Description: "Create a pattern entry",
				Code:        "manage({'action': 'create', 'zettel_id': '042-email-deliverability', 'title': 'Email Deliverability Best Practices', 'content': '# Email Deliverability...', 'entry_type': 'pattern', 'tags': ['email', 'deliverability'], 'location': 'project'})",
			},
			{
				Description: "Create a learning entry",
				Code:        "manage({'action': 'create', 'zettel_id': '045-retry-budget', 'title': 'Retry Budget Sizing', 'content': '...', 'entry_type': 'learning', 'source_type': 'experiment', 'location': 'project'})",
			},
		},
		EntryTypes: []string{
			"api_fact - API documentation snippets",
			"pattern - Reusable patterns",
			"concept - Mental models",
			"learning - Things you've learned",
			"experiment - Experiment results",
			"reference - Quick reference notes",
			"template - Code/content templates",
			"workflow - Process documentation",
		},
	}
}

func helpSearch() types.HelpResponse {
	return types.HelpResponse{
		Topic: "Searching Knowledge",
		Workflow: []string{
			"1. Search local (offline): search({'query': 'email', 'source': 'local'})",
			"2. Search registry (shared): search({'query': 'email', 'source': 'registry'})",
			"3. Search both: search({'query': 'email', 'source': ['local', 'registry']})",
		},
		Examples: []types.HelpExample{
			{
				Description: "Search local knowledge only",
				Code:        "search({'query': 'email deliverability', 'source': 'local', 'entry_type': 'pattern', 'limit': 10})",
			},
			{
				Description: "Search registry for shared knowledge",
				Code:        "search({'query': 'lead generation', 'source': 'registry', 'tags': ['outreach'], 'limit': 5})",
			},
		},
		Tips: []string{
			"Use 'local' source for offline work",
			"Use 'registry' source to discover shared knowledge",
			"Combine both sources for comprehensive results",
			"Filter by entry_type or tags for better results",
		},
	}
}

func helpDelete() types.HelpResponse {
	return types.HelpResponse{
		Topic: "Deleting Knowledge Entries",
		Workflow: []string{
			"1. Delete from local: manage({'action': 'delete', 'zettel_id': '042-email', 'source': 'local', 'confirm': true})",
			"2. Delete from registry: manage({'action': 'delete', 'zettel_id': '042-email', 'source': 'registry', 'confirm': true})",
			"3. Delete from both: manage({'action': 'delete', 'zettel_id': '042-email', 'source': ['local', 'registry'], 'confirm': true})",
		},
		Examples: []types.HelpExample{
			{
				Description: "Delete from project space only",
				Code:        "manage({'action': 'delete', 'zettel_id': '042-email-deliverability', 'source': 'local', 'location': 'project', 'confirm': true})",
			},
			{
				Description: "Delete from registry with relationships (cascade)",
				Code:        "manage({'action': 'delete', 'zettel_id': '042-email-deliverability', 'source': 'registry', 'cascade_relationships': true, 'confirm': true})",
			},
		},
		Tips: []string{
			"Always requires confirm: true for safety",
			"Can delete from project, user, or registry",
			"Can delete from multiple tiers in one operation",
			"Registry deletions with relationships require cascade_relationships: true",
		},
		Safety: []string{
			"confirm: true is always required",
			"Registry deletions check for relationships by default",
			"Set cascade_relationships: true to delete relationships too",
		},
	}
}

func helpLink() types.HelpResponse {
	return types.HelpResponse{
		Topic: "Linking Entries and Collections",
		Workflow: []string{
			"1. Link two entries: link({'action': 'link', 'from_zettel_id': '042-email', 'to_zettel_id': '043-spf', 'relationship_type': 'references'})",
			"2. Create collection: link({'action': 'create_collection', 'name': 'Email Infrastructure', 'zettel_ids': ['042-email', '043-spf'], 'collection_type': 'topic'})",
			"3. Get relationships: link({'action': 'get_relationships', 'zettel_id': '042-email'})",
		},
		RelationshipTypes: []string{
			"references - A mentions B",
			"contradicts - A disagrees with B",
			"extends - A builds on B",
			"implements - A is implementation of B",
			"supersedes - A replaces B",
			"depends_on - A requires B",
			"related - General relationship",
			"example_of - A is example of B",
		},
		CollectionTypes: []string{
			"topic - Related by topic",
			"project - Project-specific",
			"learning_path - Sequential learning",
			"reference - Quick reference",
			"archive - Archived entries",
		},
	}
}

func helpPublish() types.HelpResponse {
	return types.HelpResponse{
		Topic: "Publishing to Registry",
		Workflow: []string{
			"1. Create entry locally: manage({'action': 'create', 'location': 'project', ...})",
			"2. Refine and update: manage({'action': 'update', ...})",
			"3. Publish when ready: manage({'action': 'publish', 'zettel_id': '042-email'})",
		},
		Examples: []types.HelpExample{
			{
				Description: "Publish from local storage",
				Code:        "manage({'action': 'publish', 'zettel_id': '042-email-deliverability'})",
			},
			{
				Description: "Publish with specific version",
				Code:        "manage({'action': 'publish', 'zettel_id': '042-email-deliverability', 'version': '1.1.0'})",
			},
		},
		Tips: []string{
			"Publish makes your knowledge available to others",
			"Version auto-increments if not specified",
			"Can publish from project or user space",
		},
	}
}

func helpSources() types.HelpResponse {
	cfg := hooks.GetConfig()
	tiers := []string{
		"Project space - " + cfg.Project.KnowledgeDir,
		"User space - " + cfg.User.Dir,
	}
	if cfg.Registry.URL != "" {
		tiers = append(tiers, "Registry - "+cfg.Registry.URL)
	} else {
		tiers = append(tiers, "Registry - not configured")
	}

	return types.HelpResponse{
		Topic:       "Explicit Source Selection",
		Description: "Every read names its tiers; nothing hits the network unless 'registry' is requested",
		Workflow: []string{
			"local - checks project space first, then user space; offline and fast",
			"registry - checks the shared registry only; versioned entries",
			"['local', 'registry'] - checks both, local results prioritized",
		},
		StorageTiers: tiers,
		Tips: []string{
			"Default to 'local' for offline-first workflows",
			"Use 'registry' to discover shared knowledge",
			"Combine both for comprehensive results",
		},
	}
}

func helpGeneral() types.HelpResponse {
	return types.HelpResponse{
		Topic:       "Knowledge Tools Overview",
		Description: "Five tools manage a three-tier knowledge base: project space, user space, and the shared registry",
		Tools: []types.HelpTool{
			{Name: "search", Description: "Search knowledge entries with explicit source selection", Example: "search({'query': 'email', 'source': 'local'})"},
			{Name: "get", Description: "Get entry details with relationships", Example: "get({'zettel_id': '042-email', 'source': 'local'})"},
			{Name: "manage", Description: "Create, update, delete, and publish entries", Example: "manage({'action': 'create', 'zettel_id': '042-email', 'title': '...', 'content': '...', 'entry_type': 'pattern'})"},
			{Name: "link", Description: "Link entries and create collections", Example: "link({'action': 'link', 'from_zettel_id': '042-email', 'to_zettel_id': '043-spf', 'relationship_type': 'references'})"},
			{Name: "help", Description: "Get workflow guidance", Example: "help({'query': 'how to create an entry'})"},
		},
		StorageTiers: []string{
			"Project space - project-specific knowledge next to the code",
			"User space - personal knowledge library in the home directory",
			"Registry - shared, versioned knowledge",
		},
	}
}
