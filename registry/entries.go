package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/josephgoksu/zettelwing/models"
)

// PublishResult reports the identity and version of a published entry.
type PublishResult struct {
	ZettelID string
	Version  string
}

// Get fetches an entry by id. A missing entry, like an unconfigured
// registry, yields (nil, nil) so callers can fall through to other tiers.
func (c *Client) Get(ctx context.Context, zettelID string) (*models.Entry, error) {
	if !c.Configured() {
		return nil, nil
	}

	row := c.db.QueryRowContext(ctx, `
		SELECT zettel_id, title, content, entry_type, category, tags, source_type, source_url, version
		FROM entries WHERE zettel_id = ?
	`, zettelID)

	var entry models.Entry
	var category, tagsJSON, sourceType, sourceURL sql.NullString
	err := row.Scan(&entry.ZettelID, &entry.Title, &entry.Content, (*string)(&entry.EntryType),
		&category, &tagsJSON, &sourceType, &sourceURL, &entry.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}

	entry.Category = category.String
	entry.SourceType = sourceType.String
	entry.SourceURL = sourceURL.String
	entry.Tags = decodeTags(tagsJSON.String)
	return &entry, nil
}

// Publish upserts an entry. An explicit version wins; otherwise an existing
// entry's version is auto-incremented and a new entry starts at 1.0.0.
func (c *Client) Publish(ctx context.Context, entry models.Entry, version string) (*PublishResult, error) {
	if !c.Configured() {
		return nil, ErrUnavailable
	}

	existing, err := c.Get(ctx, entry.ZettelID)
	if err != nil {
		return nil, err
	}

	switch {
	case version != "":
		// keep caller's version
	case existing != nil:
		version = nextVersion(existing.Version)
	default:
		version = "1.0.0"
	}

	tagsJSON, err := json.Marshal(orEmpty(entry.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	if existing != nil {
		_, err = c.db.ExecContext(ctx, `
			UPDATE entries
			SET title = ?, content = ?, entry_type = ?, category = ?, tags = ?,
			    source_type = ?, source_url = ?, version = ?, updated_at = datetime('now')
			WHERE zettel_id = ?
		`, entry.Title, entry.Content, string(entry.EntryType), nullable(entry.Category),
			string(tagsJSON), nullable(entry.SourceType), nullable(entry.SourceURL),
			version, entry.ZettelID)
	} else {
		_, err = c.db.ExecContext(ctx, `
			INSERT INTO entries (zettel_id, title, content, entry_type, category, tags, source_type, source_url, version)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, entry.ZettelID, entry.Title, entry.Content, string(entry.EntryType),
			nullable(entry.Category), string(tagsJSON), nullable(entry.SourceType),
			nullable(entry.SourceURL), version)
	}
	if err != nil {
		return nil, fmt.Errorf("publish entry: %w", err)
	}

	return &PublishResult{ZettelID: entry.ZettelID, Version: version}, nil
}

// Delete removes an entry. Without cascade it refuses when relationships
// exist; with cascade it removes edges in both directions first and reports
// how many went with the entry.
func (c *Client) Delete(ctx context.Context, zettelID string, cascade bool) (int, error) {
	if !c.Configured() {
		return 0, ErrUnavailable
	}

	existing, err := c.Get(ctx, zettelID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, zettelID)
	}

	var total int
	err = c.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM relationships
		WHERE from_zettel_id = ? OR to_zettel_id = ?
	`, zettelID, zettelID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count relationships: %w", err)
	}

	if total > 0 && !cascade {
		return 0, &ConflictError{Relationships: total}
	}

	// Edges and entry go together or not at all.
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleted := 0
	if cascade && total > 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM relationships WHERE from_zettel_id = ? OR to_zettel_id = ?
		`, zettelID, zettelID); err != nil {
			return 0, fmt.Errorf("delete relationships: %w", err)
		}
		deleted = total
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE zettel_id = ?", zettelID); err != nil {
		return 0, fmt.Errorf("delete entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}
	return deleted, nil
}

// nextVersion bumps the final dot-separated component. A version that does
// not end in a number resets to 1.0.1.
func nextVersion(current string) string {
	parts := strings.Split(current, ".")
	patch, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "1.0.1"
	}
	parts[len(parts)-1] = strconv.Itoa(patch + 1)
	return strings.Join(parts, ".")
}

func decodeTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []string{}
	}
	return tags
}

func orEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
