package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf, Prefix: "selnav"})
	l.sink.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warning", LevelWarn},
		{" warn ", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFormat(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)
	l.WithComponent("history").WithField("n", 3).Info("loaded %d entries", 3)

	want := "2026-01-02T03:04:05.000 [INFO] selnav: loaded 3 entries {component=history, n=3}\n"
	if buf.String() != want {
		t.Errorf("got  %q\nwant %q", buf.String(), want)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	l, buf := newTestLogger(LevelWarn)
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown")

	if got := strings.Count(buf.String(), "shown"); got != 2 {
		t.Errorf("wrote %d lines, want 2:\n%s", got, buf.String())
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Error("filtered message was written")
	}
}

func TestDerivedLoggersShareLevel(t *testing.T) {
	l, buf := newTestLogger(LevelError)
	child := l.WithComponent("app")

	l.SetLevel(LevelDebug)
	child.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel on parent did not reach derived logger")
	}
	if child.Level() != LevelDebug {
		t.Errorf("child.Level() = %v", child.Level())
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	l, buf := newTestLogger(LevelInfo)
	_ = l.WithField("k", "v")
	l.Info("plain")
	if strings.Contains(buf.String(), "k=v") {
		t.Error("WithField changed the parent logger")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "selnav.log")
	w := OpenFile(FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 1})
	l := New(Config{Level: LevelInfo, Output: w})
	l.Info("to file")
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q", data)
	}
}
