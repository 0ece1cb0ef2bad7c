package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"
)

func TestAppendAndReadAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	l, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	events := []LogEvent{
		{Event: EventFileSelected, Path: "photo.jpg", MIMEType: "image/jpeg", Bytes: 1234},
		{Event: EventGenerationStarted, RequestID: "req-1", Version: 2, Style: "Charcoal"},
		{Time: fixed, Event: EventGenerationFailed, RequestID: "req-1", Error: "boom"},
	}
	for _, e := range events {
		if err := l.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[0].Time.IsZero() {
		t.Error("Append should stamp a zero Time")
	}
	if !got[2].Time.Equal(fixed) {
		t.Errorf("Time = %v, want %v", got[2].Time, fixed)
	}
	if got[1].Version != 2 || got[1].Style != "Charcoal" {
		t.Errorf("event = %+v", got[1])
	}
	if l.Path() != filepath.Join(dir, FileName) {
		t.Errorf("Path() = %q", l.Path())
	}
}

func TestReadAllMissingFile(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	events, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestReadAllBadLine(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{\"event\":\"ok\"}\nnot json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	l, _ := NewLogger(dir)
	_, err := l.ReadAll()
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v, want parse error on line 2", err)
	}
}

func TestAppendConcurrent(t *testing.T) {
	l, _ := NewLogger(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Append(LogEvent{Event: EventStyleSelected})
		}()
	}
	wg.Wait()

	events, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 20 {
		t.Errorf("got %d events, want 20", len(events))
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	if err := l.Append(LogEvent{Event: EventSessionReset}); err != nil {
		t.Errorf("nil Append: %v", err)
	}
}

func TestSetupDebug(t *testing.T) {
	var buf bytes.Buffer
	SetupDebug(&buf, true)
	t.Cleanup(func() { SetupDebug(os.Stderr, false) })

	charmlog.Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("debug output missing: %q", buf.String())
	}

	buf.Reset()
	SetupDebug(&buf, false)
	charmlog.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at warn level: %q", buf.String())
	}
}

func TestOpenDebugFile(t *testing.T) {
	dir := t.TempDir()
	f, err := OpenDebugFile(dir, true)
	if err != nil {
		t.Fatalf("OpenDebugFile: %v", err)
	}
	t.Cleanup(func() { SetupDebug(os.Stderr, false) })

	charmlog.Debug("to file")
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, DebugFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("debug.log = %q", data)
	}
}
