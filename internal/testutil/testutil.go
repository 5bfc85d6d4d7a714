// Package testutil provides testing utilities for prodpath tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by viper.
const EnvPrefix = "PRODPATH"

// IsolateConfig points HOME and XDG_CONFIG_HOME at fresh temporary
// directories, clears PRODPATH_* variables that would leak into viper, and
// resets viper before and after the test. Returns the config directory.
func IsolateConfig(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	xdg := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", xdg)
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, EnvPrefix+"_") {
			continue
		}
		// Setenv registers the restore; Unsetenv makes the key truly absent.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)

	return filepath.Join(xdg, "prodpath")
}

// WriteFile writes content to name inside a temporary directory and returns
// the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", name, err)
	}
	return path
}
