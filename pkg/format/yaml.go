//go:build !noyaml

package format

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// YAML renders records as a block-style sequence of mappings.
type YAML struct{}

var _ Formatter = (*YAML)(nil)

// NewYAML satisfies Factory.
func NewYAML(Options) (Formatter, error) {
	return &YAML{}, nil
}

func (*YAML) Name() string        { return FormatYAML }
func (*YAML) Extension() string   { return ".yaml" }
func (*YAML) ContentType() string { return "application/yaml" }

// Format implements Formatter.
func (*YAML) Format(ctx context.Context, records []schema.Record) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if records == nil {
		records = []schema.Record{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("format: yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("format: yaml: %w", err)
	}
	return buf.Bytes(), nil
}
