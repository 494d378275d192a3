// Package search implements the deterministic relevance scoring shared by
// every storage tier, so local and registry results rank on the same scale.
package search

import "strings"

// Tokenize splits a raw query into normalized terms: whitespace split,
// lowercased, with terms shorter than two characters dropped.
func Tokenize(query string) []string {
	var terms []string
	for _, word := range strings.Fields(query) {
		word = strings.ToLower(strings.TrimSpace(word))
		if len(word) >= 2 {
			terms = append(terms, word)
		}
	}
	return terms
}

// MatchesAll reports whether every term appears as a substring of the
// combined title and body text. Entries failing this gate never score.
func MatchesAll(terms []string, title, body string) bool {
	haystack := strings.ToLower(title + " " + body)
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// Score computes a relevance score in [0, 100] for an entry against the
// query terms.
//
//   - exact title match: 100
//   - all terms in title: 80
//   - some terms in title: 60 * fraction
//   - all terms in body: at least 40
//   - some terms in body: at least 20 * fraction
//   - category terms: +15 * fraction
//   - tag terms: +10 * min(fraction, 1)
//
// Callers must apply MatchesAll first; Score itself does not gate.
func Score(terms []string, title, body, category string, tags []string) float64 {
	if len(terms) == 0 {
		return 0
	}

	titleLower := strings.ToLower(title)
	bodyLower := strings.ToLower(body)

	// Exact title match, tolerating _ and - word separators.
	titleNormalized := strings.ReplaceAll(strings.ReplaceAll(titleLower, "_", " "), "-", " ")
	queryNormalized := strings.Join(terms, " ")
	if titleNormalized == queryNormalized || titleLower == strings.ReplaceAll(queryNormalized, " ", "_") {
		return 100
	}

	titleMatches := countMatches(terms, titleLower)
	bodyMatches := countMatches(terms, bodyLower)
	n := float64(len(terms))

	var score float64
	if titleMatches == len(terms) {
		score = 80
	} else if titleMatches > 0 {
		score = 60 * float64(titleMatches) / n
	}

	if bodyMatches == len(terms) {
		score = max(score, 40)
	} else if bodyMatches > 0 {
		score = max(score, 20*float64(bodyMatches)/n)
	}

	if category != "" {
		if m := countMatches(terms, strings.ToLower(category)); m > 0 {
			score += 15 * float64(m) / n
		}
	}

	if len(tags) > 0 {
		tagsStr := strings.ToLower(strings.Join(tags, " "))
		if m := countMatches(terms, tagsStr); m > 0 {
			score += 10 * min(float64(m)/n, 1)
		}
	}

	return min(score, 100)
}

func countMatches(terms []string, haystack string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			count++
		}
	}
	return count
}
