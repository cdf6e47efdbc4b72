package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Entry is one decoded line of the JSON log file.
type Entry struct {
	Time    time.Time
	Level   string
	Logger  string
	Message string
	Fields  map[string]string
}

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Tail reads the last maxLines entries of the log at path.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

// Parse decodes a JSON log line. Lines that are not JSON objects come back
// as the message of an otherwise empty entry.
func Parse(line string) Entry {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Message: strings.TrimSpace(line)}
	}

	var e Entry
	for key, value := range raw {
		switch key {
		case "time":
			if ts, err := time.Parse(time.RFC3339Nano, unquote(value)); err == nil {
				e.Time = ts
			} else if ts, err := time.Parse("2006-01-02T15:04:05.000Z0700", unquote(value)); err == nil {
				e.Time = ts
			}
		case "level":
			e.Level = unquote(value)
		case "logger":
			e.Logger = unquote(value)
		case "msg":
			e.Message = unquote(value)
		case "caller", "stacktrace":
		default:
			if e.Fields == nil {
				e.Fields = make(map[string]string)
			}
			e.Fields[key] = unquote(value)
		}
	}
	return e
}

// FieldKeys returns the entry's extra field names in sorted order.
func (e Entry) FieldKeys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func unquote(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
