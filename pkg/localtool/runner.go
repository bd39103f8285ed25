// Package localtool runs local documentation commands (go doc, pydoc, ri)
// and captures their output. Local tools are the fastest and most accurate
// source when the toolchain and package are installed, so they sit first in
// every resolution chain.
package localtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolMissing is returned when the requested command is not on PATH.
var ErrToolMissing = errors.New("tool not installed")

// ErrToolFailed is returned when the command ran but exited non-zero,
// typically because the package or symbol is unknown to it.
var ErrToolFailed = errors.New("tool failed")

// maxOutputBytes caps captured output so a misbehaving tool can't balloon
// memory. Real doc output is a few kilobytes.
const maxOutputBytes = 1 << 20

// Runner executes a fixed documentation command. The zero value is not
// usable; construct with New.
type Runner struct {
	tool string
	path string // resolved at construction, empty when missing
}

// New creates a Runner for the named tool, resolving it on PATH once.
// A missing tool is not an error here: Run reports ErrToolMissing, which a
// resolution chain treats as one more failed source.
func New(tool string) *Runner {
	r := &Runner{tool: tool}
	if path, err := exec.LookPath(tool); err == nil {
		r.path = path
	}
	return r
}

// Available reports whether the tool was found on PATH.
func (r *Runner) Available() bool { return r.path != "" }

// Run executes the tool with the given arguments and returns its stdout.
// The context bounds execution; a killed process surfaces as ErrToolFailed
// wrapped around the context error.
func (r *Runner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if r.path == "" {
		return nil, fmt.Errorf("%w: %s", ErrToolMissing, r.tool)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrToolFailed, r.tool, ctx.Err())
		}
		detail := firstLine(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrToolFailed, r.tool, detail)
	}

	out := stdout.Bytes()
	if len(out) > maxOutputBytes {
		out = out[:maxOutputBytes]
	}
	return out, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
