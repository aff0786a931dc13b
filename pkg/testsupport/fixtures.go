package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
	"github.com/goliatone/go-datagen/pkg/schema"
)

// FixedTime is the clock used by deterministic generation tests.
var FixedTime = time.Date(2024, time.June, 15, 12, 30, 0, 0, time.UTC)

// Clock returns FixedTime on every call.
func Clock() time.Time {
	return FixedTime
}

// LoadDocument reads a fixture and builds an openapi.Document using a file
// source.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustParseSchema parses JSON or YAML schema text.
func MustParseSchema(t *testing.T, text string) schema.Schema {
	t.Helper()

	s, err := schema.ParseString(text)
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return s
}

// Records returns a small fixed dataset covering every value shape a
// formatter must handle.
func Records() []schema.Record {
	return []schema.Record{
		schema.NewRecord(
			schema.Entry{Name: "id", Value: int64(1)},
			schema.Entry{Name: "name", Value: "O'Brien"},
			schema.Entry{Name: "score", Value: 9.5},
			schema.Entry{Name: "active", Value: true},
			schema.Entry{Name: "tags", Value: []any{"a", int64(2)}},
			schema.Entry{Name: "note", Value: nil},
		),
		schema.NewRecord(
			schema.Entry{Name: "id", Value: int64(2)},
			schema.Entry{Name: "name", Value: "Ada <Lovelace>"},
			schema.Entry{Name: "score", Value: float64(100)},
			schema.Entry{Name: "active", Value: false},
			schema.Entry{Name: "tags", Value: []any{"b"}},
			schema.Entry{Name: "note", Value: "x,y"},
		),
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got with the golden file at path, rewriting the file
// instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGolden(t, path)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
