package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetQuiet(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose after SetVerbose(true)")
	}
	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected quiet after SetVerbose(false)")
	}
}

func TestVerboseOnlyLevels(t *testing.T) {
	defer reset()

	tests := []struct {
		name    string
		log     func()
		verbose string
	}{
		{"debug", func() { Debug("%d groups", 3) }, "[DEBUG] 3 groups\n"},
		{"info", func() { Info("ingested %s", "notes.md") }, "[INFO] ingested notes.md\n"},
		{"section", func() { Section("Ingest") }, "\n=== Ingest ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf)

			SetVerbose(false)
			tt.log()
			if buf.Len() != 0 {
				t.Errorf("expected no output when not verbose, got %q", buf.String())
			}

			SetVerbose(true)
			tt.log()
			if buf.String() != tt.verbose {
				t.Errorf("got %q, want %q", buf.String(), tt.verbose)
			}
		})
	}
}

func TestWarn(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("skipping %s", "a.md")
	if buf.String() != "[WARN] skipping a.md\n" {
		t.Errorf("unexpected warn output: %q", buf.String())
	}

	buf.Reset()
	SetQuiet(true)
	Warn("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output in quiet mode, got %q", buf.String())
	}

	SetVerbose(true)
	Warn("shown")
	if buf.String() != "[WARN] shown\n" {
		t.Errorf("verbose should override quiet, got %q", buf.String())
	}
}

func TestConcurrentAccess(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			SetVerbose(i%2 == 0)
			SetQuiet(i%3 == 0)
			Debug("concurrent %d", i)
			_ = IsVerbose()
		}(i)
	}
	wg.Wait()
}
