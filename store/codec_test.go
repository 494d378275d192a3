package store

import (
	"strings"
	"testing"

	"github.com/josephgoksu/zettelwing/models"
)

func TestParseDocument(t *testing.T) {
	raw := []byte(`---
zettel_id: 042-email
title: Email Deliverability
entry_type: pattern
category: email/smtp
tags:
  - email
  - smtp
source_type: experiment
author: someone
---

# Deliverability

Body text here.
`)

	doc := ParseDocument(raw, "fallback")

	if doc.Entry.ZettelID != "042-email" {
		t.Errorf("zettel_id = %q", doc.Entry.ZettelID)
	}
	if doc.Entry.Title != "Email Deliverability" {
		t.Errorf("title = %q", doc.Entry.Title)
	}
	if doc.Entry.EntryType != models.EntryType("pattern") {
		t.Errorf("entry_type = %q", doc.Entry.EntryType)
	}
	if doc.Entry.Category != "email/smtp" {
		t.Errorf("category = %q", doc.Entry.Category)
	}
	if len(doc.Entry.Tags) != 2 || doc.Entry.Tags[0] != "email" {
		t.Errorf("tags = %v", doc.Entry.Tags)
	}
	if !strings.HasPrefix(doc.Entry.Content, "# Deliverability") {
		t.Errorf("content = %q", doc.Entry.Content)
	}
	if doc.Extra["author"] != "someone" {
		t.Errorf("extra = %v", doc.Extra)
	}
}

func TestParseDocumentNoFrontmatter(t *testing.T) {
	doc := ParseDocument([]byte("just a body"), "010-note")

	if doc.Entry.ZettelID != "010-note" {
		t.Errorf("zettel_id fallback = %q, want filename stem", doc.Entry.ZettelID)
	}
	if doc.Entry.Content != "just a body" {
		t.Errorf("content = %q", doc.Entry.Content)
	}
}

func TestParseDocumentMalformedFrontmatter(t *testing.T) {
	raw := []byte("---\n: : not yaml [\n---\n\nbody survives")
	doc := ParseDocument(raw, "007-x")

	if doc.Entry.ZettelID != "007-x" {
		t.Errorf("zettel_id = %q", doc.Entry.ZettelID)
	}
	if doc.Entry.Content != "body survives" {
		t.Errorf("content = %q", doc.Entry.Content)
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	original := Document{
		Entry: models.Entry{
			ZettelID:   "042-email",
			Title:      "Email Deliverability",
			Content:    "# Heading\n\nSome content.",
			EntryType:  models.TypePattern,
			Category:   "email/smtp",
			Tags:       []string{"email", "smtp"},
			SourceType: "experiment",
			SourceURL:  "https://example.com",
		},
		Extra: map[string]interface{}{"author": "someone"},
	}

	data, err := SerializeDocument(original)
	if err != nil {
		t.Fatalf("SerializeDocument() error: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\nzettel_id: 042-email\n") {
		t.Errorf("frontmatter does not lead with zettel_id:\n%s", data)
	}

	parsed := ParseDocument(data, "042-email")
	if parsed.Entry.Title != original.Entry.Title ||
		parsed.Entry.Content != original.Entry.Content ||
		parsed.Entry.Category != original.Entry.Category ||
		parsed.Entry.SourceURL != original.Entry.SourceURL {
		t.Errorf("round trip mismatch: %+v", parsed.Entry)
	}
	if parsed.Extra["author"] != "someone" {
		t.Errorf("extra field lost: %v", parsed.Extra)
	}
}

func TestSanitizeCategory(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Email Infrastructure", "email-infrastructure"},
		{"email/SMTP Setup", "email/smtp-setup"},
		{"--weird!!name--", "weird-name"},
		{"already-clean_01/sub", "already-clean_01/sub"},
	}
	for _, c := range cases {
		if got := SanitizeCategory(c.in); got != c.want {
			t.Errorf("SanitizeCategory(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	// Sanitizing is idempotent.
	for _, c := range cases {
		once := SanitizeCategory(c.in)
		if twice := SanitizeCategory(once); twice != once {
			t.Errorf("SanitizeCategory not idempotent for %q: %q vs %q", c.in, once, twice)
		}
	}
}

func TestCategoryForType(t *testing.T) {
	cases := []struct{ in, want string }{
		{"api_fact", "apis"},
		{"learning", "learnings"},
		{"pattern", "patterns"},
		{"category", "categories"},
		{"box", "boxes"},
		{"match", "matches"},
	}
	for _, c := range cases {
		if got := CategoryForType(c.in); got != c.want {
			t.Errorf("CategoryForType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
