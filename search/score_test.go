package search

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"JWT Authentication", []string{"jwt", "authentication"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"a b cd", []string{"cd"}},
		{"", nil},
		{"   ", nil},
	}
	for _, c := range cases {
		got := Tokenize(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	terms := Tokenize("Alpha Pattern JWT-tokens")
	again := Tokenize(strings.Join(terms, " "))
	if !reflect.DeepEqual(terms, again) {
		t.Errorf("tokenizing normalized terms changed them: %v vs %v", terms, again)
	}
}

func TestMatchesAllRequiresEveryTerm(t *testing.T) {
	terms := Tokenize("jwt authentication")

	if MatchesAll(terms, "JWT tokens", "signing and verification") {
		t.Error("entry without 'authentication' should not match")
	}
	if !MatchesAll(terms, "JWT tokens", "authentication via signed tokens") {
		t.Error("entry containing both terms should match")
	}
}

func TestScoreExactTitleMatch(t *testing.T) {
	terms := Tokenize("alpha pattern")

	if got := Score(terms, "Alpha Pattern", "body", "", nil); got != 100 {
		t.Errorf("exact title score = %v, want 100", got)
	}
	// Underscores and hyphens in the title count as word separators.
	if got := Score(terms, "alpha_pattern", "body", "", nil); got != 100 {
		t.Errorf("underscore title score = %v, want 100", got)
	}
	if got := Score(terms, "alpha-pattern", "body", "", nil); got != 100 {
		t.Errorf("hyphen title score = %v, want 100", got)
	}
}

func TestScoreTitleAndBodyTiers(t *testing.T) {
	terms := Tokenize("jwt authentication")

	if got := Score(terms, "JWT authentication basics", "", "", nil); got != 80 {
		t.Errorf("all-terms-in-title score = %v, want 80", got)
	}
	if got := Score(terms, "JWT tokens", "", "", nil); got != 30 {
		t.Errorf("half-terms-in-title score = %v, want 30", got)
	}
	if got := Score(terms, "Tokens", "jwt authentication flow", "", nil); got != 40 {
		t.Errorf("all-terms-in-body score = %v, want 40", got)
	}
	if got := Score(terms, "Tokens", "jwt only", "", nil); got != 10 {
		t.Errorf("half-terms-in-body score = %v, want 10", got)
	}
}

func TestScoreBonuses(t *testing.T) {
	terms := Tokenize("jwt")

	base := Score(terms, "JWT handbook", "body", "", nil)
	withCategory := Score(terms, "JWT handbook", "body", "jwt-security", nil)
	if withCategory != base+15 {
		t.Errorf("category bonus = %v, want %v", withCategory, base+15)
	}
	withTags := Score(terms, "JWT handbook", "body", "", []string{"jwt", "auth"})
	if withTags != base+10 {
		t.Errorf("tags bonus = %v, want %v", withTags, base+10)
	}
}

func TestScoreClampedAt100(t *testing.T) {
	terms := Tokenize("jwt auth")
	got := Score(terms, "jwt auth guide", "jwt auth", "jwt/auth", []string{"jwt", "auth"})
	if got != 100 {
		t.Errorf("score = %v, want clamp at 100", got)
	}
}

func TestSnippet(t *testing.T) {
	content := "This document explains how JSON web tokens work in practice and when to rotate signing keys for long lived sessions across multiple services and environments."
	snippet := Snippet(content, []string{"rotate"})
	if snippet == "" {
		t.Fatal("expected non-empty snippet")
	}
	if want := "rotate"; !strings.Contains(snippet, want) {
		t.Errorf("snippet %q does not contain %q", snippet, want)
	}

	// No term hit falls back to the leading characters.
	fallback := Snippet(content, []string{"zzz"})
	if len(fallback) > snippetMaxLength+3 {
		t.Errorf("fallback snippet too long: %d chars", len(fallback))
	}

	short := Snippet("tiny", []string{"zzz"})
	if short != "tiny" {
		t.Errorf("short content snippet = %q, want %q", short, "tiny")
	}
}
