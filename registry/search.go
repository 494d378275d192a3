package registry

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/josephgoksu/zettelwing/models"
	"github.com/josephgoksu/zettelwing/search"
)

// SearchFilter narrows a registry search.
type SearchFilter struct {
	Category  string
	EntryType string
	Tags      []string
	Limit     int
}

// Search runs full-text search over registry entries. FTS5 provides the
// candidate set; candidates are over-fetched at three times the limit, then
// gated and re-scored client-side so registry results rank on the same
// scale as local ones.
func (c *Client) Search(ctx context.Context, query string, filter SearchFilter) ([]models.SearchResult, error) {
	if !c.Configured() {
		return nil, nil
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	terms := search.Tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	matchQuery := sanitizeFTSQuery(query)
	if matchQuery == "" {
		return nil, nil
	}

	sqlQuery := `
		SELECT e.zettel_id, e.title, e.entry_type, e.category, e.tags,
		       snippet(entries_fts, 2, '', '', '...', 24) AS snip,
		       bm25(entries_fts) AS rank
		FROM entries_fts f
		JOIN entries e ON f.zettel_id = e.zettel_id
		WHERE entries_fts MATCH ?`
	args := []interface{}{matchQuery}

	if filter.EntryType != "" {
		sqlQuery += " AND e.entry_type = ?"
		args = append(args, filter.EntryType)
	}
	if filter.Category != "" {
		sqlQuery += " AND e.category = ?"
		args = append(args, filter.Category)
	}
	sqlQuery += " ORDER BY rank LIMIT ?"
	args = append(args, limit*3)

	rows, err := c.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("registry search failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.SearchResult
	for rows.Next() {
		var zettelID, title, entryType, snip string
		var category, tagsJSON sql.NullString
		var rank float64
		if err := rows.Scan(&zettelID, &title, &entryType, &category, &tagsJSON, &snip, &rank); err != nil {
			continue
		}

		tags := decodeTags(tagsJSON.String)
		if len(filter.Tags) > 0 && !anyTagMatch(filter.Tags, tags) {
			continue
		}
		if !search.MatchesAll(terms, title, snip) {
			continue
		}

		// Registry scoring sees only title and snippet; no category or
		// tag bonuses apply.
		score := search.Score(terms, title, snip, "", nil)
		results = append(results, models.SearchResult{
			ZettelID:       zettelID,
			Title:          title,
			EntryType:      models.EntryType(entryType),
			Category:       category.String,
			Tags:           tags,
			SourceLocation: "registry",
			RelevanceScore: score / 100.0,
			Snippet:        snip,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("registry search failed: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// sanitizeFTSQuery rewrites a free-form query into a safe FTS5 MATCH
// expression: operators stripped, each word quoted, joined with OR for
// recall. The AND semantics are enforced client-side afterwards.
func sanitizeFTSQuery(query string) string {
	var filtered []string
	for _, word := range strings.Fields(query) {
		word = strings.Trim(word, `"'()`)
		if word == "" {
			continue
		}
		upper := strings.ToUpper(word)
		if upper == "OR" || upper == "AND" || upper == "NOT" || upper == "NEAR" {
			continue
		}
		word = strings.ReplaceAll(word, "*", "")
		word = strings.ReplaceAll(word, `"`, "")
		if word != "" {
			filtered = append(filtered, word)
		}
	}
	if len(filtered) == 0 {
		return ""
	}

	var quoted []string
	for _, w := range filtered {
		quoted = append(quoted, `"`+w+`"`)
	}
	return strings.Join(quoted, " OR ")
}

func anyTagMatch(want, have []string) bool {
	for _, w := range want {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}
