package store

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/zettelwing/models"
)

// Document is one on-disk entry plus any frontmatter fields the codec does
// not model. Extra fields survive a read-modify-write cycle untouched.
type Document struct {
	Entry models.Entry
	Extra map[string]interface{}
	Path  string
}

// frontMatter fixes the serialization order of the known fields.
type frontMatter struct {
	ZettelID   string   `yaml:"zettel_id"`
	Title      string   `yaml:"title"`
	EntryType  string   `yaml:"entry_type"`
	Category   string   `yaml:"category,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	SourceType string   `yaml:"source_type,omitempty"`
	SourceURL  string   `yaml:"source_url,omitempty"`
	Version    string   `yaml:"version,omitempty"`
}

// ParseDocument decodes a markdown file with optional YAML frontmatter.
// It never fails: malformed or absent frontmatter yields a document whose
// body is the whole file, and a missing zettel_id falls back to fallbackID
// (the filename stem).
func ParseDocument(raw []byte, fallbackID string) Document {
	text := string(raw)
	fields := map[string]interface{}{}
	body := text

	if strings.HasPrefix(text, "---") {
		parts := strings.SplitN(text, "---", 3)
		if len(parts) >= 3 {
			var parsed map[string]interface{}
			if err := yaml.Unmarshal([]byte(strings.TrimSpace(parts[1])), &parsed); err == nil && parsed != nil {
				fields = parsed
			}
			body = strings.TrimSpace(parts[2])
		}
	}

	doc := Document{Extra: map[string]interface{}{}}
	doc.Entry.Content = body

	for key, value := range fields {
		switch key {
		case "zettel_id":
			doc.Entry.ZettelID = asString(value)
		case "title":
			doc.Entry.Title = asString(value)
		case "entry_type":
			doc.Entry.EntryType = models.EntryType(asString(value))
		case "category":
			doc.Entry.Category = asString(value)
		case "tags":
			doc.Entry.Tags = asStringSlice(value)
		case "source_type":
			doc.Entry.SourceType = asString(value)
		case "source_url":
			doc.Entry.SourceURL = asString(value)
		case "version":
			doc.Entry.Version = asString(value)
		default:
			doc.Extra[key] = value
		}
	}

	if doc.Entry.ZettelID == "" {
		doc.Entry.ZettelID = fallbackID
	}
	return doc
}

// SerializeDocument renders a document back to file bytes: known fields in a
// stable order, extra fields after them, then the body.
func SerializeDocument(doc Document) ([]byte, error) {
	fm := frontMatter{
		ZettelID:   doc.Entry.ZettelID,
		Title:      doc.Entry.Title,
		EntryType:  string(doc.Entry.EntryType),
		Category:   doc.Entry.Category,
		Tags:       doc.Entry.Tags,
		SourceType: doc.Entry.SourceType,
		SourceURL:  doc.Entry.SourceURL,
		Version:    doc.Entry.Version,
	}
	head, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var extra []byte
	if len(doc.Extra) > 0 {
		extra, err = yaml.Marshal(doc.Extra)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal extra frontmatter: %w", err)
		}
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.Write(extra)
	b.WriteString("---\n\n")
	b.WriteString(doc.Entry.Content)
	b.WriteString("\n")
	return []byte(b.String()), nil
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func asStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		if s, ok := v.(string); ok && s != "" {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, item := range items {
		out = append(out, asString(item))
	}
	return out
}
