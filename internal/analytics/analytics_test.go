package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestRecordAndHistory(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger := NewLogger(fs, "/home/dev/.zettelwing", "/work")

	now := time.Now()
	execs := []Execution{
		{Timestamp: now.Add(-2 * time.Hour), Tool: "search", Status: "success", DurationSec: 0.031},
		{Timestamp: now.Add(-1 * time.Hour), Tool: "manage", Status: "error", DurationSec: 0.105, Error: "boom"},
		{Timestamp: now, Tool: "search", Status: "success", DurationSec: 0.007},
	}
	for _, e := range execs {
		if err := logger.Record(e); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	raw, err := afero.ReadFile(fs, "/home/dev/.zettelwing/.runs/history.jsonl")
	if err != nil {
		t.Fatalf("history file missing: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	all, err := logger.History(now.Add(-24*time.Hour), "")
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d executions, want 3", len(all))
	}
	if all[0].Tool != "search" || !all[0].Timestamp.After(all[1].Timestamp) {
		t.Errorf("history not most recent first: %+v", all)
	}
	if all[0].Project != "/work" {
		t.Errorf("project = %q", all[0].Project)
	}

	searches, err := logger.History(now.Add(-24*time.Hour), "search")
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(searches) != 2 {
		t.Errorf("tool filter returned %d, want 2", len(searches))
	}

	recent, err := logger.History(now.Add(-30*time.Minute), "")
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("cutoff filter returned %d, want 1", len(recent))
	}
}

func TestHistoryMissingFile(t *testing.T) {
	logger := NewLogger(afero.NewMemMapFs(), "/home/dev/.zettelwing", "")
	execs, err := logger.History(time.Time{}, "")
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if execs != nil {
		t.Errorf("got %v, want nil", execs)
	}
}

func TestSummarize(t *testing.T) {
	long := strings.Repeat("x", 150)
	data := map[string]interface{}{
		"query":  "jwt",
		"long":   long,
		"nested": map[string]interface{}{"a": 1},
		"list":   []interface{}{1, 2},
		"limit":  10,
		"extra1": "a",
		"extra2": "b",
	}

	got := Summarize(data)
	if len(got) != 5 {
		t.Errorf("summarized %d keys, want 5", len(got))
	}
	if s, ok := got["long"].(string); ok {
		if len(s) != 103 || !strings.HasSuffix(s, "...") {
			t.Errorf("long value not truncated: %d chars", len(s))
		}
	}
	if got["nested"] != nil && got["nested"] != "<dict>" {
		t.Errorf("nested = %v, want <dict> marker", got["nested"])
	}
	if got["list"] != nil && got["list"] != "<list>" {
		t.Errorf("list = %v, want <list> marker", got["list"])
	}

	if Summarize(nil) != nil {
		t.Error("Summarize(nil) should be nil")
	}
}
