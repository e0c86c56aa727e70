// Package testutil provides test utilities and fixtures for unit tests.
//
// Shared fixture documents live in txtar archives under this package's
// testdata directory so every package's tests can load them by name.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"go.yaml.in/yaml/v4"
	"golang.org/x/tools/txtar"
)

// fixtureDir returns the absolute path of this package's testdata directory.
func fixtureDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata")
}

// Archive loads the named txtar archive (without extension) from the shared
// fixture directory.
func Archive(t testing.TB, name string) *txtar.Archive {
	t.Helper()

	ar, err := txtar.ParseFile(filepath.Join(fixtureDir(), name+".txtar"))
	if err != nil {
		t.Fatalf("Failed to load fixture archive %s: %v", name, err)
	}
	return ar
}

// File returns the contents of one member of an archive.
func File(t testing.TB, ar *txtar.Archive, name string) []byte {
	t.Helper()

	for _, f := range ar.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("Fixture archive has no file %s", name)
	return nil
}

// Extract writes every member of an archive below a fresh temporary
// directory and returns that directory.
func Extract(t testing.TB, ar *txtar.Archive) string {
	t.Helper()

	dir := t.TempDir()
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create fixture directory: %v", err)
		}
		if err := os.WriteFile(path, f.Data, 0o600); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", f.Name, err)
		}
	}
	return dir
}

// MinimalDocument returns the smallest valid OpenAPI 3.1 document as plain maps.
func MinimalDocument() map[string]any {
	return map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":   "Test API",
			"version": "1.0.0",
		},
		"paths": map[string]any{},
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t testing.TB, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t testing.TB, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
