// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/signalboard/internal/sampledata"
)

// SetupDataDir copies the sample data into a temporary directory and returns
// its path. overrides replaces files by name; a nil value removes the file.
func SetupDataDir(t *testing.T, overrides map[string][]byte) string {
	t.Helper()

	dir := t.TempDir()
	err := fs.WalkDir(sampledata.FS(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(sampledata.FS(), path)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, path), data, 0600)
	})
	if err != nil {
		t.Fatalf("failed to copy sample data: %v", err)
	}

	for name, data := range overrides {
		path := filepath.Join(dir, name)
		if data == nil {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				t.Fatalf("failed to remove %s: %v", name, err)
			}
			continue
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	return dir
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
