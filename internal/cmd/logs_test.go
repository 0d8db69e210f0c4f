package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/heistboard/internal/logging"
	"github.com/Iron-Ham/heistboard/internal/testutil"
)

// syncBuffer is a bytes.Buffer safe for a writer and a polling reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// writeLog writes lines from a real logger so the format stays in step.
func writeLog(t *testing.T, dir string, write func(l *logging.Logger)) string {
	t.Helper()
	l, err := logging.NewLogger(dir, logging.LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	write(l)
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return filepath.Join(dir, logging.FileName)
}

func TestLogEntryUnmarshal(t *testing.T) {
	var e logEntry
	line := `{"time":"2026-01-02T03:04:05Z","level":"WARN","msg":"feed error","source":"websocket","session_id":"abc","attempt":3}`
	if err := e.UnmarshalJSON([]byte(line)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if e.Level != "WARN" || e.Msg != "feed error" || e.Source != "websocket" || e.SessionID != "abc" {
		t.Errorf("entry = %+v", e)
	}
	if len(e.Extra) != 1 || e.Extra["attempt"] != float64(3) {
		t.Errorf("Extra = %v, want only attempt", e.Extra)
	}
}

func TestLogFilter(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	entry := &logEntry{
		Time:   now.Add(-30 * time.Minute),
		Level:  "WARN",
		Msg:    "redialing",
		Source: "websocket",
		Extra:  map[string]any{"delay": "2s"},
	}

	tests := []struct {
		name  string
		level string
		since string
		grep  string
		want  bool
	}{
		{"no filters", "", "", "", true},
		{"level below", "info", "", "", true},
		{"level equal", "warn", "", "", true},
		{"level above", "error", "", "", false},
		{"since covers", "", "1h", "", true},
		{"since excludes", "", "10m", "", false},
		{"grep message", "", "", "redial", true},
		{"grep source", "", "", "^redialing websocket", true},
		{"grep extra", "", "", "2s", true},
		{"grep miss", "", "", "vault", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := newLogFilter(tt.level, tt.since, tt.grep, now)
			if err != nil {
				t.Fatalf("newLogFilter() error = %v", err)
			}
			if got := f.passes(entry); got != tt.want {
				t.Errorf("passes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogFilterInvalid(t *testing.T) {
	if _, err := newLogFilter("", "yesterday", "", time.Now()); err == nil {
		t.Error("expected an error for a bad duration")
	}
	if _, err := newLogFilter("", "", "(", time.Now()); err == nil {
		t.Error("expected an error for a bad pattern")
	}
}

func TestDisplayLogs(t *testing.T) {
	path := writeLog(t, t.TempDir(), func(l *logging.Logger) {
		l.Debug("frame loop started")
		l.WithSource("file").Info("feed started")
		l.WithSource("file").Warn("snapshot rejected", "error", "invalid entries array")
		l.Error("feed stopped")
	})

	tests := []struct {
		name    string
		tail    int
		level   string
		want    []string
		notWant []string
	}{
		{
			name: "all",
			want: []string{"frame loop started", "feed started", "source=file", "error=invalid entries array", "feed stopped"},
		},
		{
			name:    "tail",
			tail:    2,
			want:    []string{"snapshot rejected", "feed stopped"},
			notWant: []string{"feed started"},
		},
		{
			name:    "level",
			level:   "warn",
			want:    []string{"[WARN]", "[ERROR]"},
			notWant: []string{"[DEBUG]", "[INFO]"},
		},
		{
			name:    "errors only",
			level:   "error",
			want:    []string{"feed stopped"},
			notWant: []string{"snapshot rejected"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := newLogFilter(tt.level, "", "", time.Now())
			if err != nil {
				t.Fatalf("newLogFilter() error = %v", err)
			}
			var out bytes.Buffer
			if err := displayLogs(path, tt.tail, newLogPrinter(&out), f); err != nil {
				t.Fatalf("displayLogs() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out.String(), notWant) {
					t.Errorf("output should not contain %q:\n%s", notWant, out.String())
				}
			}
		})
	}
}

func TestDisplayLogsRawAndEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logging.FileName)
	if err := os.WriteFile(path, []byte("panic: not json\n\n"), 0o644); err != nil {
		t.Fatalf("writing log: %v", err)
	}

	var out bytes.Buffer
	f, _ := newLogFilter("", "", "", time.Now())
	if err := displayLogs(path, 0, newLogPrinter(&out), f); err != nil {
		t.Fatalf("displayLogs() error = %v", err)
	}
	if !strings.Contains(out.String(), "panic: not json") {
		t.Errorf("raw line not shown:\n%s", out.String())
	}

	out.Reset()
	f, _ = newLogFilter("error", "", "", time.Now())
	empty := writeLog(t, t.TempDir(), func(l *logging.Logger) { l.Info("quiet") })
	if err := displayLogs(empty, 0, newLogPrinter(&out), f); err != nil {
		t.Fatalf("displayLogs() error = %v", err)
	}
	if !strings.Contains(out.String(), "No matching log entries found.") {
		t.Errorf("output = %q, want the no-match message", out.String())
	}
}

func TestFollowLogs(t *testing.T) {
	testutil.SkipIfShort(t)

	dir := t.TempDir()
	path := writeLog(t, dir, func(l *logging.Logger) { l.Info("before follow") })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	f, _ := newLogFilter("", "", "", time.Now())
	done := make(chan error, 1)
	go func() { done <- followLogs(ctx, path, newLogPrinter(out), f) }()

	// Lines written before following are skipped; wait until the watcher
	// sees appended lines.
	logger, err := logging.NewLogger(dir, logging.LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer func() { _ = logger.Close() }()

	testutil.Eventually(t, 3*time.Second, func() bool {
		logger.Info("after follow")
		return strings.Contains(out.String(), "after follow")
	}, "appended log line printed")

	if strings.Contains(out.String(), "before follow") {
		t.Error("follow should start at the end of the file")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("followLogs() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("followLogs did not return after cancel")
	}
}
