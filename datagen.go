// Package datagen generates synthetic test records from templates or schemas
// and renders them as JSON, CSV, SQL, YAML, HTML or a custom template.
//
//	out, err := datagen.Generate(ctx, "user", 10, "csv")
package datagen

import (
	"context"

	"github.com/goliatone/go-datagen/pkg/format"
	"github.com/goliatone/go-datagen/pkg/orchestrator"
	"github.com/goliatone/go-datagen/pkg/schema"
	"github.com/goliatone/go-datagen/pkg/templates"
)

// Request aliases orchestrator.Request for callers using the root package.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate renders count records of a built-in template in the named format
// using default format options.
func Generate(ctx context.Context, template string, count int, formatName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Template: template,
		Count:    count,
		Format:   formatName,
	})
}

// GenerateFromSchema renders count records of s in the named format.
func GenerateFromSchema(ctx context.Context, s schema.Schema, count int, formatName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Schema: &s,
		Count:  count,
		Format: formatName,
	})
}

// Templates returns the built-in template registry.
func Templates() *templates.Registry {
	return templates.Default()
}

// Formats returns the built-in formatter registry.
func Formats() *format.Registry {
	return format.Default()
}
