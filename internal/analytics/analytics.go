// Package analytics records tool executions to a JSONL history file in the
// user knowledge directory. Recording is best-effort: failures never affect
// the tool call that triggered them.
package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const (
	runsDir     = ".runs"
	historyFile = "history.jsonl"

	maxSummaryItems       = 5
	maxSummaryValueLength = 100
)

// Execution is one recorded tool invocation. Inputs and outputs are stored
// summarized, never verbatim.
type Execution struct {
	Timestamp   time.Time              `json:"timestamp"`
	Tool        string                 `json:"tool"`
	Status      string                 `json:"status"`
	DurationSec float64                `json:"duration_sec"`
	Project     string                 `json:"project,omitempty"`
	Inputs      map[string]interface{} `json:"inputs,omitempty"`
	Outputs     map[string]interface{} `json:"outputs,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

// Logger appends executions to <userDir>/.runs/history.jsonl.
type Logger struct {
	fs      afero.Fs
	userDir string
	project string

	mu sync.Mutex
}

// NewLogger creates a logger writing under the given user directory.
// project tags every record with the project the server runs in.
func NewLogger(fs afero.Fs, userDir, project string) *Logger {
	return &Logger{fs: fs, userDir: userDir, project: project}
}

// Record appends one execution to the history file.
func (l *Logger) Record(exec Execution) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	exec.Project = l.project
	exec.DurationSec = math.Round(exec.DurationSec*100) / 100

	path := filepath.Join(l.userDir, runsDir, historyFile)
	if err := l.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create runs directory: %w", err)
	}

	data, err := json.Marshal(exec)
	if err != nil {
		return fmt.Errorf("encode execution: %w", err)
	}

	f, err := l.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append execution: %w", err)
	}
	return nil
}

// History loads recorded executions since the cutoff, most recent first.
// An optional tool name narrows the result.
func (l *Logger) History(since time.Time, tool string) ([]Execution, error) {
	path := filepath.Join(l.userDir, runsDir, historyFile)
	raw, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var executions []Execution
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var exec Execution
		if err := json.Unmarshal([]byte(line), &exec); err != nil {
			continue
		}
		if exec.Timestamp.Before(since) {
			continue
		}
		if tool != "" && exec.Tool != tool {
			continue
		}
		executions = append(executions, exec)
	}

	sort.SliceStable(executions, func(i, j int) bool {
		return executions[i].Timestamp.After(executions[j].Timestamp)
	})
	return executions, nil
}

// Summarize trims a parameter map for storage: at most five keys, long
// strings truncated, nested values replaced by a type marker.
func Summarize(data map[string]interface{}) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxSummaryItems {
		keys = keys[:maxSummaryItems]
	}

	summarized := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		switch v := data[k].(type) {
		case string:
			if len(v) > maxSummaryValueLength {
				summarized[k] = v[:maxSummaryValueLength] + "..."
			} else {
				summarized[k] = v
			}
		case map[string]interface{}:
			summarized[k] = "<dict>"
		case []interface{}:
			summarized[k] = "<list>"
		default:
			summarized[k] = v
		}
	}
	return summarized
}
