package logging

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one parsed line of torq.log.
type Entry struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	RunID   string         `json:"run_id,omitempty"`
	Command string         `json:"command,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// Filter selects log entries. Zero-value fields do not filter;
// set fields combine with AND.
type Filter struct {
	// Level keeps entries at or above this level.
	Level string
	// Since keeps entries at or after this time.
	Since time.Time
	// Until keeps entries at or before this time.
	Until time.Time
	// RunID keeps entries from one CLI invocation.
	RunID string
	// Command keeps entries from one command verb.
	Command string
	// MessageContains keeps entries whose message contains this substring.
	MessageContains string
}

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ReadEntries parses every log entry under dir: torq.log plus any
// plain rotated backups (torq.log.1 and up), since a recent rotation
// can leave the newest entries split across files. Gzipped backups are
// skipped. Lines that fail to parse are skipped so a partially
// corrupted log still yields the rest. Entries come back sorted by
// timestamp, oldest first.
func ReadEntries(dir string) ([]Entry, error) {
	active := filepath.Join(dir, "torq.log")
	if _, err := os.Stat(active); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no log file found in %s: %w", dir, err)
		}
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	paths := []string{active}
	for n := 1; ; n++ {
		backup := fmt.Sprintf("%s.%d", active, n)
		if _, err := os.Stat(backup); err != nil {
			break
		}
		paths = append(paths, backup)
	}

	var entries []Entry
	for _, path := range paths {
		parsed, err := readFile(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, parsed...)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})

	return entries, nil
}

// readFile parses one log file line by line.
func readFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)

	// Entries carrying large attrs can exceed the default token size.
	const maxLine = 1024 * 1024
	scanner.Buffer(make([]byte, maxLine), maxLine)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := parseEntry(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log file: %w", err)
	}

	return entries, nil
}

// parseEntry decodes one JSON log line. Fields slog does not own
// (anything beyond time, level, msg, run_id, command) land in Attrs.
func parseEntry(line string) (Entry, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, fmt.Errorf("invalid JSON: %w", err)
	}

	entry := Entry{}

	if s, ok := raw["time"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			entry.Time = t
		}
	}
	if s, ok := raw["level"].(string); ok {
		entry.Level = s
	}
	if s, ok := raw["msg"].(string); ok {
		entry.Message = s
	}
	if s, ok := raw["run_id"].(string); ok {
		entry.RunID = s
	}
	if s, ok := raw["command"].(string); ok {
		entry.Command = s
	}

	known := map[string]bool{
		"time": true, "level": true, "msg": true,
		"run_id": true, "command": true,
	}
	for k, v := range raw {
		if known[k] {
			continue
		}
		if entry.Attrs == nil {
			entry.Attrs = make(map[string]any)
		}
		entry.Attrs[k] = v
	}

	return entry, nil
}

// FilterEntries returns the entries matching f, preserving order.
func FilterEntries(entries []Entry, f Filter) []Entry {
	if f.empty() {
		return entries
	}

	var kept []Entry
	for _, entry := range entries {
		if f.matches(entry) {
			kept = append(kept, entry)
		}
	}
	return kept
}

func (f Filter) empty() bool {
	return f.Level == "" &&
		f.Since.IsZero() &&
		f.Until.IsZero() &&
		f.RunID == "" &&
		f.Command == "" &&
		f.MessageContains == ""
}

func (f Filter) matches(e Entry) bool {
	if f.Level != "" {
		want, wantOk := levelRank[strings.ToUpper(f.Level)]
		got, gotOk := levelRank[e.Level]
		if wantOk && gotOk && got < want {
			return false
		}
	}
	if !f.Since.IsZero() && e.Time.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && e.Time.After(f.Until) {
		return false
	}
	if f.RunID != "" && e.RunID != f.RunID {
		return false
	}
	if f.Command != "" && e.Command != f.Command {
		return false
	}
	if f.MessageContains != "" && !strings.Contains(e.Message, f.MessageContains) {
		return false
	}
	return true
}

// WriteEntries renders entries to w in the given format: "text",
// "json", or "csv".
func WriteEntries(w io.Writer, entries []Entry, format string) error {
	switch strings.ToLower(format) {
	case "text":
		return writeText(w, entries)
	case "json":
		return writeJSON(w, entries)
	case "csv":
		return writeCSV(w, entries)
	default:
		return fmt.Errorf("unsupported log format: %s (supported: text, json, csv)", format)
	}
}

func writeJSON(w io.Writer, entries []Entry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

// writeText renders one line per entry:
// [TIMESTAMP] LEVEL - MESSAGE (run=.., command=..) {attrs}
func writeText(w io.Writer, entries []Entry) error {
	for _, entry := range entries {
		parts := []string{
			fmt.Sprintf("[%s]", entry.Time.Format("2006-01-02 15:04:05.000")),
			entry.Level,
			"-",
			entry.Message,
		}

		var context []string
		if entry.RunID != "" {
			context = append(context, fmt.Sprintf("run=%s", entry.RunID))
		}
		if entry.Command != "" {
			context = append(context, fmt.Sprintf("command=%s", entry.Command))
		}
		if len(context) > 0 {
			parts = append(parts, fmt.Sprintf("(%s)", strings.Join(context, ", ")))
		}

		if len(entry.Attrs) > 0 {
			attrsJSON, _ := json.Marshal(entry.Attrs)
			parts = append(parts, string(attrsJSON))
		}

		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return fmt.Errorf("failed to write log entry: %w", err)
		}
	}
	return nil
}

func writeCSV(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)

	header := []string{"timestamp", "level", "message", "run_id", "command", "attrs"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, entry := range entries {
		attrsJSON := ""
		if len(entry.Attrs) > 0 {
			if b, err := json.Marshal(entry.Attrs); err == nil {
				attrsJSON = string(b)
			}
		}

		record := []string{
			entry.Time.Format(time.RFC3339Nano),
			entry.Level,
			entry.Message,
			entry.RunID,
			entry.Command,
			attrsJSON,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
