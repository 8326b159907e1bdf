package record

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// TimestampMode selects how the record timestamp is rendered.
type TimestampMode string

const (
	// ModeLocalZ renders local wall-clock time with a literal Z suffix.
	// This mislabels local time as UTC, but it is the historic format of
	// existing log files, so it stays the default for compatibility.
	ModeLocalZ TimestampMode = "local-z"
	// ModeUTC renders true UTC in RFC 3339.
	ModeUTC TimestampMode = "utc"
	// ModeLocal renders local time with its real UTC offset.
	ModeLocal TimestampMode = "local"
)

// ValidMode reports whether m is a known timestamp mode.
func ValidMode(m TimestampMode) bool {
	switch m {
	case ModeLocalZ, ModeUTC, ModeLocal:
		return true
	}
	return false
}

// Writer appends CSV records to the log file. Each record is written with
// a single write call and no buffering across ticks, so a crash loses at
// most the in-flight record and never leaves a partial line behind.
type Writer struct {
	f    *os.File
	mode TimestampMode
	now  func() time.Time
}

// Open opens the log file for appending, creating it if needed.
func Open(path string, mode TimestampMode) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Writer{f: f, mode: mode, now: time.Now}, nil
}

// Append writes one record: type, name, timestamp, then the attribute
// values in schema order. Fields are joined with commas and not escaped;
// sysfs values are simple tokens that never contain commas.
func (w *Writer) Append(devType, name string, values []string) error {
	fields := make([]string, 0, len(values)+3)
	fields = append(fields, devType, name, w.timestamp())
	fields = append(fields, values...)

	_, err := w.f.WriteString(strings.Join(fields, ",") + "\n")
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	return w.f.Close()
}

func (w *Writer) timestamp() string {
	t := w.now()
	switch w.mode {
	case ModeUTC:
		return t.UTC().Format(time.RFC3339)
	case ModeLocal:
		return t.Format(time.RFC3339)
	default:
		return t.Format("2006-01-02T15:04:05") + "Z"
	}
}
