package rhailog

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("hello")
	log.Sync()

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected log output to contain the message, got %q", buf.String())
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("should be filtered")
	log.Warn("should appear")
	log.Sync()

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Errorf("info message should have been filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn message should appear, got %q", out)
	}
}

func TestNewUnknownLevelRejected(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(&buf, "bogus"); err == nil {
		t.Error("expected an error for an unrecognized log level")
	}
}

func TestNewEmptyLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("default level")
	log.Sync()

	if !strings.Contains(buf.String(), "default level") {
		t.Errorf("expected info-level message to appear under the default level, got %q", buf.String())
	}
}
