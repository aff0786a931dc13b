//go:build !noyaml

package format

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-datagen/pkg/schema"
	"github.com/goliatone/go-datagen/pkg/testsupport"
)

func TestYAMLKeepsFieldOrder(t *testing.T) {
	t.Parallel()

	records := []schema.Record{
		schema.NewRecord(
			schema.Entry{Name: "name", Value: "Ada"},
			schema.Entry{Name: "age", Value: int64(36)},
			schema.Entry{Name: "tags", Value: []any{"x", "y"}},
		),
	}
	got := mustFormat(t, FormatYAML, DefaultOptions(), records)
	want := "- name: Ada\n  age: 36\n  tags:\n    - x\n    - y\n"
	if got != want {
		t.Fatalf("yaml =\n%q\nwant\n%q", got, want)
	}
}

func TestYAMLMatchesGolden(t *testing.T) {
	got := mustFormat(t, FormatYAML, DefaultOptions(), testsupport.Records())
	testsupport.AssertGolden(t, filepath.Join("testdata", "records.yaml.golden"), []byte(got))
}

func TestYAMLEmptyInput(t *testing.T) {
	if got := mustFormat(t, FormatYAML, DefaultOptions(), nil); got != "[]\n" {
		t.Fatalf("yaml: expected []\\n, got %q", got)
	}
}
