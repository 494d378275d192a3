package search

import "strings"

const snippetMaxLength = 150

// Snippet extracts a short excerpt around the first occurrence of any query
// term. When no term appears in the content it falls back to the leading
// characters.
func Snippet(content string, terms []string) string {
	contentLower := strings.ToLower(content)

	for _, term := range terms {
		idx := strings.Index(contentLower, term)
		if idx == -1 {
			continue
		}
		start := idx - 50
		if start < 0 {
			start = 0
		}
		end := idx + len(term) + 100
		if end > len(content) {
			end = len(content)
		}
		snippet := content[start:end]
		if start > 0 {
			snippet = "..." + snippet
		}
		if end < len(content) {
			snippet = snippet + "..."
		}
		return strings.TrimSpace(snippet)
	}

	if len(content) > snippetMaxLength {
		return content[:snippetMaxLength] + "..."
	}
	return content
}
