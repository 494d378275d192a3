package registry

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/josephgoksu/zettelwing/models"
	"github.com/josephgoksu/zettelwing/types"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	client, err := NewWithDB(db)
	if err != nil {
		t.Fatalf("NewWithDB() error: %v", err)
	}
	return client
}

func mustPublish(t *testing.T, c *Client, entry models.Entry, version string) *PublishResult {
	t.Helper()
	res, err := c.Publish(context.Background(), entry, version)
	if err != nil {
		t.Fatalf("Publish(%s) error: %v", entry.ZettelID, err)
	}
	return res
}

func TestUnconfiguredClient(t *testing.T) {
	client, err := New(types.RegistryConfig{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if client.Configured() {
		t.Fatal("client without URL and token should be disabled")
	}

	ctx := context.Background()

	entry, err := client.Get(ctx, "anything")
	if err != nil || entry != nil {
		t.Errorf("Get() = %v, %v, want nil, nil", entry, err)
	}
	results, err := client.Search(ctx, "anything", SearchFilter{})
	if err != nil || len(results) != 0 {
		t.Errorf("Search() = %v, %v, want empty", results, err)
	}
	if _, err := client.Publish(ctx, models.Entry{ZettelID: "x"}, ""); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Publish() error = %v, want ErrUnavailable", err)
	}
	if _, err := client.Delete(ctx, "x", false); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Delete() error = %v, want ErrUnavailable", err)
	}
}

func TestPublishVersioning(t *testing.T) {
	client := newTestClient(t)
	entry := models.Entry{
		ZettelID:  "042-email",
		Title:     "Email Deliverability",
		Content:   "SPF and DKIM setup notes.",
		EntryType: models.TypePattern,
		Tags:      []string{"email"},
	}

	// New entry starts at 1.0.0.
	res := mustPublish(t, client, entry, "")
	if res.Version != "1.0.0" {
		t.Errorf("first publish version = %q, want 1.0.0", res.Version)
	}

	// Republish auto-increments the last component.
	res = mustPublish(t, client, entry, "")
	if res.Version != "1.0.1" {
		t.Errorf("second publish version = %q, want 1.0.1", res.Version)
	}

	// Explicit version wins.
	res = mustPublish(t, client, entry, "1.2.3")
	if res.Version != "1.2.3" {
		t.Errorf("explicit version = %q, want 1.2.3", res.Version)
	}
	res = mustPublish(t, client, entry, "")
	if res.Version != "1.2.4" {
		t.Errorf("increment after explicit = %q, want 1.2.4", res.Version)
	}

	got, err := client.Get(context.Background(), "042-email")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil || got.Version != "1.2.4" {
		t.Errorf("stored entry = %+v", got)
	}
}

func TestNextVersionNonNumeric(t *testing.T) {
	if got := nextVersion("2.0.beta"); got != "1.0.1" {
		t.Errorf("nextVersion(2.0.beta) = %q, want 1.0.1", got)
	}
	if got := nextVersion("1.2.3"); got != "1.2.4" {
		t.Errorf("nextVersion(1.2.3) = %q, want 1.2.4", got)
	}
	if got := nextVersion("7"); got != "8" {
		t.Errorf("nextVersion(7) = %q, want 8", got)
	}
}

func TestGetMissingEntry(t *testing.T) {
	client := newTestClient(t)
	entry, err := client.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if entry != nil {
		t.Errorf("Get(missing) = %+v, want nil", entry)
	}
}

func TestSearchGatesAndRanks(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	mustPublish(t, client, models.Entry{
		ZettelID:  "010-jwt",
		Title:     "JWT Authentication",
		Content:   "Validating jwt authentication tokens in services.",
		EntryType: models.TypePattern,
	}, "")
	mustPublish(t, client, models.Entry{
		ZettelID:  "011-body",
		Title:     "Session storage",
		Content:   "Compares jwt authentication with opaque session tokens.",
		EntryType: models.TypeConcept,
	}, "")
	// Contains only one of the two query terms.
	mustPublish(t, client, models.Entry{
		ZettelID:  "012-partial",
		Title:     "JWT signing keys",
		Content:   "Key rotation guidance.",
		EntryType: models.TypeLearning,
	}, "")

	results, err := client.Search(ctx, "jwt authentication", SearchFilter{Limit: 10})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}
	if results[0].ZettelID != "010-jwt" {
		t.Errorf("top result = %s, want title match first", results[0].ZettelID)
	}
	for _, r := range results {
		if r.SourceLocation != "registry" {
			t.Errorf("source_location = %q", r.SourceLocation)
		}
		if r.RelevanceScore <= 0 || r.RelevanceScore > 1 {
			t.Errorf("score %v out of (0,1]", r.RelevanceScore)
		}
	}

	byType, err := client.Search(ctx, "jwt", SearchFilter{EntryType: "learning", Limit: 10})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(byType) != 1 || byType[0].ZettelID != "012-partial" {
		t.Errorf("entry_type filter results: %+v", byType)
	}
}

func TestRelationshipsAndCascadeDelete(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		mustPublish(t, client, models.Entry{
			ZettelID: id, Title: "Entry " + id, Content: "body", EntryType: models.TypeLearning,
		}, "")
	}

	if err := client.CreateRelationship(ctx, models.Relationship{
		FromZettelID: "a", ToZettelID: "b", Type: models.RelReferences,
	}); err != nil {
		t.Fatalf("CreateRelationship() error: %v", err)
	}
	if err := client.CreateRelationship(ctx, models.Relationship{
		FromZettelID: "c", ToZettelID: "a", Type: models.RelExtends,
	}); err != nil {
		t.Fatalf("CreateRelationship() error: %v", err)
	}

	set, err := client.Relationships(ctx, "a")
	if err != nil {
		t.Fatalf("Relationships() error: %v", err)
	}
	if len(set.Outgoing) != 1 || set.Outgoing[0].ZettelID != "b" || set.Outgoing[0].Direction != "outgoing" {
		t.Errorf("outgoing = %+v", set.Outgoing)
	}
	if len(set.Incoming) != 1 || set.Incoming[0].ZettelID != "c" {
		t.Errorf("incoming = %+v", set.Incoming)
	}

	// Delete without cascade is blocked while edges exist.
	_, err = client.Delete(ctx, "a", false)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Delete() error = %v, want ConflictError", err)
	}
	if conflict.Relationships != 2 {
		t.Errorf("conflict count = %d, want 2", conflict.Relationships)
	}

	deleted, err := client.Delete(ctx, "a", true)
	if err != nil {
		t.Fatalf("cascade Delete() error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("relationships deleted = %d, want 2", deleted)
	}

	if entry, _ := client.Get(ctx, "a"); entry != nil {
		t.Error("entry still present after delete")
	}
	set, _ = client.Relationships(ctx, "a")
	if len(set.Outgoing)+len(set.Incoming) != 0 {
		t.Errorf("edges remain: %+v", set)
	}
}

func TestSearchIndexFollowsRepublishAndDelete(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	entry := models.Entry{
		ZettelID:  "050-queue",
		Title:     "Queue Backpressure",
		Content:   "Bounded queues and shedding.",
		EntryType: models.TypePattern,
	}
	mustPublish(t, client, entry, "")

	// Republish with a new title; the index must serve the new text only.
	entry.Title = "Load Shedding Tactics"
	entry.Content = "Dropping work under overload."
	res := mustPublish(t, client, entry, "")
	if res.Version != "1.0.1" {
		t.Fatalf("republish version = %q, want 1.0.1", res.Version)
	}

	stale, err := client.Search(ctx, "backpressure", SearchFilter{Limit: 10})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(stale) != 0 {
		t.Errorf("old title still indexed: %+v", stale)
	}
	fresh, err := client.Search(ctx, "shedding", SearchFilter{Limit: 10})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(fresh) != 1 || fresh[0].Title != "Load Shedding Tactics" {
		t.Fatalf("new title not indexed: %+v", fresh)
	}

	// Delete drops the entry from the index too.
	if _, err := client.Delete(ctx, "050-queue", false); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	gone, err := client.Search(ctx, "shedding", SearchFilter{Limit: 10})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(gone) != 0 {
		t.Errorf("deleted entry still indexed: %+v", gone)
	}
}

func TestDeleteMissingEntry(t *testing.T) {
	client := newTestClient(t)
	if _, err := client.Delete(context.Background(), "missing", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestCreateCollection(t *testing.T) {
	client := newTestClient(t)
	id, err := client.CreateCollection(context.Background(), models.Collection{
		Name:      "Email Infrastructure",
		ZettelIDs: []string{"042-email", "043-spf"},
		Type:      models.CollTopic,
	})
	if err != nil {
		t.Fatalf("CreateCollection() error: %v", err)
	}
	if id == "" {
		t.Error("expected generated collection id")
	}
}
