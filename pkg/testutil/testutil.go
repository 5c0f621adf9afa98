// Package testutil contains common test utilities.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Cleanuper wraps the Cleanup method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}

// TempDirer is the subset of [testing.TB] needed by TempDir.
type TempDirer interface {
	TempDir() string
}

// TempDir returns a temporary directory with symlinks resolved. The directory
// is removed when the test finishes.
func TempDir(t TempDirer) string {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		panic(err)
	}
	return dir
}

// WriteFile writes content to name inside dir, creating parent directories,
// and returns the full path.
func WriteFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		panic(err)
	}
	return path
}

// Set sets *p to v and restores the original value when the test finishes.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}

// Dedent removes the common leading tabs and spaces from every non-blank line
// of text. An initial newline is removed, so raw strings can start on the line
// after the opening backtick.
func Dedent(text string) string {
	text = strings.TrimPrefix(text, "\n")
	lines := strings.Split(text, "\n")
	margin := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, margin) {
			margin = margin[:len(margin)-1]
		}
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		} else {
			lines[i] = line[len(margin):]
		}
	}
	return strings.Join(lines, "\n")
}
