/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import (
	"encoding/json"
	"fmt"
)

// StringList accepts either a single JSON string or an array of strings.
// Tool callers pass source/location/destination both ways.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	*s = StringList(many)
	return nil
}

// Contains reports whether v is one of the list elements.
func (s StringList) Contains(v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// SearchParams are the arguments for the search tool.
type SearchParams struct {
	Query     string     `json:"query"`
	Source    StringList `json:"source,omitempty"`
	Category  string     `json:"category,omitempty"`
	EntryType string     `json:"entry_type,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Limit     int        `json:"limit,omitempty"`
}

// SearchResultItem is one ranked hit in a search response.
type SearchResultItem struct {
	ZettelID       string   `json:"zettel_id"`
	Title          string   `json:"title"`
	EntryType      string   `json:"entry_type"`
	Category       string   `json:"category,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	SourceLocation string   `json:"source_location"`
	RelevanceScore float64  `json:"relevance_score"`
	Snippet        string   `json:"snippet,omitempty"`
}

// SearchResponse is the structured output of the search tool.
type SearchResponse struct {
	Query        string             `json:"query"`
	Source       StringList         `json:"source"`
	ResultsCount int                `json:"results_count"`
	Results      []SearchResultItem `json:"results"`
}

// GetParams are the arguments for the get tool.
type GetParams struct {
	ZettelID             string     `json:"zettel_id"`
	Source               StringList `json:"source,omitempty"`
	IncludeRelationships bool       `json:"include_relationships,omitempty"`
	IncludeBacklinks     bool       `json:"include_backlinks,omitempty"`
	Destination          StringList `json:"destination,omitempty"`
}

// RelationLink is one edge as seen from a given entry.
type RelationLink struct {
	ZettelID         string `json:"zettel_id"`
	RelationshipType string `json:"relationship_type"`
	Direction        string `json:"direction"`
}

// EntryResponse is the structured output of the get tool.
type EntryResponse struct {
	ZettelID       string         `json:"zettel_id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	EntryType      string         `json:"entry_type"`
	Category       string         `json:"category,omitempty"`
	Tags           []string       `json:"tags"`
	SourceLocation string         `json:"source_location"`
	Relationships  []RelationLink `json:"relationships,omitempty"`
	Backlinks      []RelationLink `json:"backlinks,omitempty"`
	DownloadedTo   StringList     `json:"downloaded_to,omitempty"`
}

// ManageParams are the arguments for the manage tool. Which fields matter
// depends on the action.
type ManageParams struct {
	Action     string   `json:"action"`
	ZettelID   string   `json:"zettel_id"`
	Title      *string  `json:"title,omitempty"`
	Content    *string  `json:"content,omitempty"`
	EntryType  string   `json:"entry_type,omitempty"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	SourceType *string  `json:"source_type,omitempty"`
	SourceURL  *string  `json:"source_url,omitempty"`
	// Location selects project or user space for create/publish, and may
	// narrow the tiers for delete.
	Location StringList `json:"location,omitempty"`
	// Source selects the tiers a delete applies to.
	Source               StringList `json:"source,omitempty"`
	CascadeRelationships bool       `json:"cascade_relationships,omitempty"`
	Confirm              bool       `json:"confirm,omitempty"`
	Version              string     `json:"version,omitempty"`
}

// DeletedFrom reports which tiers a delete actually removed copies from.
type DeletedFrom struct {
	Local    []string `json:"local"`
	Registry bool     `json:"registry"`
}

// ManageResponse is the structured output of the manage tool.
type ManageResponse struct {
	Status               string            `json:"status"`
	Action               string            `json:"action"`
	ZettelID             string            `json:"zettel_id"`
	Location             string            `json:"location,omitempty"`
	Category             string            `json:"category,omitempty"`
	Path                 string            `json:"path,omitempty"`
	Version              string            `json:"version,omitempty"`
	PublishedTo          string            `json:"published_to,omitempty"`
	DeletedFrom          *DeletedFrom      `json:"deleted_from,omitempty"`
	RelationshipsDeleted int               `json:"relationships_deleted,omitempty"`
	Errors               map[string]string `json:"errors,omitempty"`
}

// LinkParams are the arguments for the link tool.
type LinkParams struct {
	Action           string   `json:"action"`
	FromZettelID     string   `json:"from_zettel_id,omitempty"`
	ToZettelID       string   `json:"to_zettel_id,omitempty"`
	RelationshipType string   `json:"relationship_type,omitempty"`
	Name             string   `json:"name,omitempty"`
	Description      string   `json:"description,omitempty"`
	ZettelIDs        []string `json:"zettel_ids,omitempty"`
	CollectionType   string   `json:"collection_type,omitempty"`
	ZettelID         string   `json:"zettel_id,omitempty"`
}

// RelationshipSet groups edges by direction relative to one entry.
type RelationshipSet struct {
	Outgoing []RelationLink `json:"outgoing"`
	Incoming []RelationLink `json:"incoming"`
}

// LinkResponse is the structured output of the link tool.
type LinkResponse struct {
	Status        string           `json:"status,omitempty"`
	Action        string           `json:"action,omitempty"`
	Relationship  *RelationshipRef `json:"relationship,omitempty"`
	CollectionID  string           `json:"collection_id,omitempty"`
	ZettelID      string           `json:"zettel_id,omitempty"`
	Relationships *RelationshipSet `json:"relationships,omitempty"`
}

// RelationshipRef echoes a created relationship back to the caller.
type RelationshipRef struct {
	FromZettelID     string `json:"from_zettel_id"`
	ToZettelID       string `json:"to_zettel_id"`
	RelationshipType string `json:"relationship_type"`
}

// HelpParams are the arguments for the help tool.
type HelpParams struct {
	Query   string `json:"query,omitempty"`
	Context string `json:"context,omitempty"`
}

// HelpExample pairs a description with a runnable call.
type HelpExample struct {
	Description string `json:"description"`
	Code        string `json:"code"`
}

// HelpTool describes one tool in the general help overview.
type HelpTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// HelpResponse is the structured output of the help tool. Sections are
// populated per topic; empty ones are omitted.
type HelpResponse struct {
	Topic             string        `json:"topic"`
	Description       string        `json:"description,omitempty"`
	Workflow          []string      `json:"workflow,omitempty"`
	Examples          []HelpExample `json:"examples,omitempty"`
	EntryTypes        []string      `json:"entry_types,omitempty"`
	RelationshipTypes []string      `json:"relationship_types,omitempty"`
	CollectionTypes   []string      `json:"collection_types,omitempty"`
	StorageTiers      []string      `json:"storage_tiers,omitempty"`
	Tools             []HelpTool    `json:"tools,omitempty"`
	Tips              []string      `json:"tips,omitempty"`
	Safety            []string      `json:"safety,omitempty"`
}
