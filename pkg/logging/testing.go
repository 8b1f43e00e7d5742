package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger is a JSON logger writing to an in-memory buffer.
type TestLogger struct {
	*zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger creates a trace level test logger. The global level is
// lowered for the duration of the test and restored on cleanup.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	return &TestLogger{Logger: &logger, Buffer: buf}
}

// Output returns the captured log output as a string
func (tl *TestLogger) Output() string {
	return tl.Buffer.String()
}

// Entries decodes every captured line. Lines that are not JSON are skipped.
func (tl *TestLogger) Entries() []map[string]any {
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(tl.Output()), "\n") {
		var entry map[string]any
		if json.Unmarshal([]byte(line), &entry) == nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Count returns the number of log entries
func (tl *TestLogger) Count() int {
	return len(tl.Entries())
}

// Find returns the first entry with the given message, or nil.
func (tl *TestLogger) Find(message string) map[string]any {
	for _, e := range tl.Entries() {
		if e[zerolog.MessageFieldName] == message {
			return e
		}
	}
	return nil
}

// Contains checks if the log output contains the given string
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}

// AssertContains asserts that the log contains the given string
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !tl.Contains(substr) {
		t.Errorf("log output does not contain %q\noutput:\n%s", substr, tl.Output())
	}
}

// AssertField asserts that the entry logged with message carries key=want.
// Numbers decode as float64.
func (tl *TestLogger) AssertField(t testing.TB, message, key string, want any) {
	t.Helper()
	entry := tl.Find(message)
	if entry == nil {
		t.Errorf("no log entry %q\noutput:\n%s", message, tl.Output())
		return
	}
	if got := entry[key]; got != want {
		t.Errorf("log entry %q: %s = %v (%T), want %v (%T)", message, key, got, got, want, want)
	}
}

// NewNopLogger creates a logger that discards all output (useful for tests)
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
