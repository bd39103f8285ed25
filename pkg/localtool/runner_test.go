package localtool

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunCapturesStdout(t *testing.T) {
	r := New("echo")
	if !r.Available() {
		t.Skip("echo not on PATH")
	}

	out, err := r.Run(context.Background(), "hello", "docs")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "hello docs" {
		t.Errorf("output = %q", got)
	}
}

func TestRunMissingTool(t *testing.T) {
	r := New("definitely-not-a-real-tool-xyz")
	if r.Available() {
		t.Fatal("Available() = true for a nonexistent tool")
	}
	_, err := r.Run(context.Background())
	if !errors.Is(err, ErrToolMissing) {
		t.Errorf("error = %v, want ErrToolMissing", err)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	r := New("false")
	if !r.Available() {
		t.Skip("false not on PATH")
	}
	_, err := r.Run(context.Background())
	if !errors.Is(err, ErrToolFailed) {
		t.Errorf("error = %v, want ErrToolFailed", err)
	}
}

func TestRunHonorsContext(t *testing.T) {
	r := New("sleep")
	if !r.Available() {
		t.Skip("sleep not on PATH")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := r.Run(ctx, "5")
	if !errors.Is(err, ErrToolFailed) {
		t.Errorf("error = %v, want ErrToolFailed", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Run() outlived its context")
	}
}
