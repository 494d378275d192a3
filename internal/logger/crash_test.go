package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatCrashLog(t *testing.T) {
	log := CrashLog{
		Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Version:    "1.2.3",
		Command:    "mcp",
		PanicValue: "runtime error: index out of range",
		StackTrace: "goroutine 1 [running]:\nmain.main()",
		GoVersion:  "go1.24.6",
		OS:         "linux",
		Arch:       "amd64",
	}

	out := FormatCrashLog(log)

	for _, want := range []string{
		"ZETTELWING CRASH LOG",
		"Version:   1.2.3",
		"Command:   mcp",
		"runtime error: index out of range",
		"goroutine 1 [running]:",
		"OS/Arch:   linux/amd64",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted crash log missing %q", want)
		}
	}
}

func TestWriteCrashLogCreatesFile(t *testing.T) {
	base := t.TempDir()
	SetBasePath(base)
	SetVersion("0.0.1")
	SetCommand("search")
	defer SetBasePath("")

	log := createCrashLog("boom")
	if log.Command != "search" {
		t.Fatalf("Command = %q, want search", log.Command)
	}
	if log.PanicValue != "boom" {
		t.Fatalf("PanicValue = %q, want boom", log.PanicValue)
	}

	if err := writeCrashLog(log); err != nil {
		t.Fatalf("writeCrashLog: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(base, CrashLogDir))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d crash logs, want 1", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "crash_") {
		t.Errorf("unexpected crash log name %q", entries[0].Name())
	}
}

func TestCleanOldCrashLogs(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < MaxCrashLogs+3; i++ {
		name := filepath.Join(dir, time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC).Format("crash_20060102_150405.log"))
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	if err := cleanOldCrashLogs(dir); err != nil {
		t.Fatalf("cleanOldCrashLogs: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != MaxCrashLogs-1 {
		t.Fatalf("got %d logs after cleanup, want %d", len(entries), MaxCrashLogs-1)
	}
	// Oldest logs should be gone, newest kept.
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	for _, n := range names {
		if n < "crash_20250105" {
			t.Errorf("old log %q survived cleanup", n)
		}
	}
}
