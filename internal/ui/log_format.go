package ui

import (
	"strings"
	"time"

	"github.com/five82/forkify/internal/logtail"
)

func formatLogEntries(entries []logtail.Entry) []string {
	if len(entries) == 0 {
		return nil
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, formatLogEntry(e))
	}
	return lines
}

func formatLogEntry(e logtail.Entry) string {
	parts := make([]string, 0, 4)
	if !e.Time.IsZero() {
		parts = append(parts, e.Time.In(time.Local).Format("2006-01-02 15:04:05"))
	}
	level := strings.ToUpper(strings.TrimSpace(e.Level))
	if level == "" {
		level = "INFO"
	}
	parts = append(parts, level)
	if component := componentName(e.Logger); component != "" {
		parts = append(parts, "["+component+"]")
	}
	header := strings.Join(parts, " ")
	if message := strings.TrimSpace(e.Message); message != "" {
		header += " – " + message
	}
	if len(e.Fields) == 0 {
		return header
	}
	var builder strings.Builder
	builder.WriteString(header)
	for _, key := range e.FieldKeys() {
		value := strings.TrimSpace(e.Fields[key])
		if value == "" {
			continue
		}
		builder.WriteString("\n    - ")
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
	}
	return builder.String()
}

// componentName drops the application prefix from a named logger.
func componentName(logger string) string {
	logger = strings.TrimSpace(logger)
	if rest, ok := strings.CutPrefix(logger, "forkify."); ok {
		return rest
	}
	return logger
}
