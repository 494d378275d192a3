package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EntryType classifies a knowledge entry. The set below is what the tools
// advertise, but the field is deliberately open: unknown values are accepted
// and stored unchanged.
type EntryType string

const (
	TypeAPIFact    EntryType = "api_fact"
	TypePattern    EntryType = "pattern"
	TypeConcept    EntryType = "concept"
	TypeLearning   EntryType = "learning"
	TypeExperiment EntryType = "experiment"
	TypeReference  EntryType = "reference"
	TypeTemplate   EntryType = "template"
	TypeWorkflow   EntryType = "workflow"
)

// RelationshipType is the closed set of edge types between entries.
type RelationshipType string

const (
	RelReferences  RelationshipType = "references"
	RelContradicts RelationshipType = "contradicts"
	RelExtends     RelationshipType = "extends"
	RelImplements  RelationshipType = "implements"
	RelSupersedes  RelationshipType = "supersedes"
	RelDependsOn   RelationshipType = "depends_on"
	RelRelated     RelationshipType = "related"
	RelExampleOf   RelationshipType = "example_of"
)

// RelationshipTypes lists every valid relationship type, in display order.
var RelationshipTypes = []RelationshipType{
	RelReferences, RelContradicts, RelExtends, RelImplements,
	RelSupersedes, RelDependsOn, RelRelated, RelExampleOf,
}

// ValidRelationshipType reports whether t is a member of the closed set.
func ValidRelationshipType(t string) bool {
	for _, v := range RelationshipTypes {
		if string(v) == t {
			return true
		}
	}
	return false
}

// CollectionType is the closed set of collection groupings.
type CollectionType string

const (
	CollTopic        CollectionType = "topic"
	CollProject      CollectionType = "project"
	CollLearningPath CollectionType = "learning_path"
	CollReference    CollectionType = "reference"
	CollArchive      CollectionType = "archive"
)

// CollectionTypes lists every valid collection type.
var CollectionTypes = []CollectionType{
	CollTopic, CollProject, CollLearningPath, CollReference, CollArchive,
}

// ValidCollectionType reports whether t is a member of the closed set.
func ValidCollectionType(t string) bool {
	for _, v := range CollectionTypes {
		if string(v) == t {
			return true
		}
	}
	return false
}

// Entry is one knowledge unit. The same zettel_id can exist independently in
// several tiers; each physical copy is its own Entry instance and the tiers
// are not kept in sync.
type Entry struct {
	ZettelID   string    `json:"zettel_id" yaml:"zettel_id" validate:"required"`
	Title      string    `json:"title" yaml:"title" validate:"required"`
	Content    string    `json:"content" yaml:"-" validate:"required"`
	EntryType  EntryType `json:"entry_type" yaml:"entry_type" validate:"required"`
	Category   string    `json:"category,omitempty" yaml:"category,omitempty"`
	Tags       []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	SourceType string    `json:"source_type,omitempty" yaml:"source_type,omitempty"`
	SourceURL  string    `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	// Version is meaningful only for registry-tier copies.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Relationship is a directed, typed edge between two entry ids. Relationships
// live only in the registry tier; duplicates are permitted.
type Relationship struct {
	FromZettelID string           `json:"from_zettel_id" validate:"required"`
	ToZettelID   string           `json:"to_zettel_id" validate:"required"`
	Type         RelationshipType `json:"relationship_type" validate:"required"`
}

// Collection is a named, typed grouping of entry ids in the registry tier.
// Membership is a static list and is not validated against existing entries.
type Collection struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description,omitempty"`
	ZettelIDs   []string       `json:"zettel_ids"`
	Type        CollectionType `json:"collection_type" validate:"required"`
}

// SearchResult is the normalized result shape shared by every tier so that
// local and registry hits rank and render identically.
type SearchResult struct {
	ZettelID       string    `json:"zettel_id"`
	Title          string    `json:"title"`
	EntryType      EntryType `json:"entry_type"`
	Category       string    `json:"category,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	SourceLocation string    `json:"source_location"`
	RelevanceScore float64   `json:"relevance_score"`
	Snippet        string    `json:"snippet,omitempty"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
