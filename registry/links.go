package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/josephgoksu/zettelwing/models"
	"github.com/josephgoksu/zettelwing/types"
)

// Relationships returns the edges touching an entry, grouped by direction.
// Each link carries the id of the entry on the other end. An unconfigured
// registry returns empty sets.
func (c *Client) Relationships(ctx context.Context, zettelID string) (*types.RelationshipSet, error) {
	set := &types.RelationshipSet{
		Outgoing: []types.RelationLink{},
		Incoming: []types.RelationLink{},
	}
	if !c.Configured() {
		return set, nil
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT from_zettel_id, to_zettel_id, relationship_type
		FROM relationships
		WHERE from_zettel_id = ? OR to_zettel_id = ?
		ORDER BY id
	`, zettelID, zettelID)
	if err != nil {
		return nil, fmt.Errorf("get relationships: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var from, to, relType string
		if err := rows.Scan(&from, &to, &relType); err != nil {
			continue
		}
		if from == zettelID {
			set.Outgoing = append(set.Outgoing, types.RelationLink{
				ZettelID:         to,
				RelationshipType: relType,
				Direction:        "outgoing",
			})
		}
		if to == zettelID {
			set.Incoming = append(set.Incoming, types.RelationLink{
				ZettelID:         from,
				RelationshipType: relType,
				Direction:        "incoming",
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get relationships: %w", err)
	}
	return set, nil
}

// CreateRelationship inserts a directed edge. Endpoint existence is not
// checked and duplicates are allowed.
func (c *Client) CreateRelationship(ctx context.Context, rel models.Relationship) error {
	if !c.Configured() {
		return ErrUnavailable
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO relationships (from_zettel_id, to_zettel_id, relationship_type)
		VALUES (?, ?, ?)
	`, rel.FromZettelID, rel.ToZettelID, string(rel.Type))
	if err != nil {
		return fmt.Errorf("create relationship: %w", err)
	}
	return nil
}

// CreateCollection stores a named grouping of entry ids and returns the
// generated collection id. Membership is not validated.
func (c *Client) CreateCollection(ctx context.Context, coll models.Collection) (string, error) {
	if !c.Configured() {
		return "", ErrUnavailable
	}

	id := uuid.New().String()
	idsJSON, err := json.Marshal(orEmpty(coll.ZettelIDs))
	if err != nil {
		return "", fmt.Errorf("encode zettel ids: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO collections (id, name, description, collection_type, zettel_ids)
		VALUES (?, ?, ?, ?, ?)
	`, id, coll.Name, nullable(coll.Description), string(coll.Type), string(idsJSON))
	if err != nil {
		return "", fmt.Errorf("create collection: %w", err)
	}
	return id, nil
}
