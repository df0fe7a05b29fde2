// Package testutil provides fixtures and fakes shared by unitylink tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ConfigFileName mirrors config.DefaultConfigFile without importing it.
const ConfigFileName = ".unitylink.json"

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// WriteConfig writes a .unitylink.json file into root and returns its path.
func WriteConfig(t *testing.T, root, content string) string {
	t.Helper()

	path := filepath.Join(root, ConfigFileName)
	WriteFile(t, path, content)
	return path
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}
