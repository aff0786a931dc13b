//go:build noyaml

package format

import (
	"context"
	"fmt"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// YAML is unavailable in builds tagged noyaml.
type YAML struct{}

var _ Formatter = (*YAML)(nil)

// NewYAML keeps the format discoverable; Format reports the missing encoder.
func NewYAML(Options) (Formatter, error) {
	return &YAML{}, nil
}

func (*YAML) Name() string        { return FormatYAML }
func (*YAML) Extension() string   { return ".yaml" }
func (*YAML) ContentType() string { return "application/yaml" }

func (*YAML) Format(context.Context, []schema.Record) ([]byte, error) {
	return nil, fmt.Errorf("format: yaml: %w: YAML output requires a build without the noyaml tag", ErrMissingDependency)
}
