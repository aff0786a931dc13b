package templates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// ErrUnknownTemplate reports a template name missing from the registry.
var ErrUnknownTemplate = errors.New("unknown template")

// Template is a named, immutable schema.
type Template struct {
	Name        string
	Description string
	Schema      schema.Schema
	// Source names the file the template was loaded from.
	Source string
}

// Registry maps template names to schemas, keeping registration order.
type Registry struct {
	order     []string
	templates map[string]Template
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register adds tpl. Names must be unique.
func (r *Registry) Register(tpl Template) error {
	name := strings.TrimSpace(tpl.Name)
	if name == "" {
		return errors.New("templates: template name is required")
	}
	if _, exists := r.templates[name]; exists {
		return fmt.Errorf("templates: duplicate template %q", name)
	}
	tpl.Name = name
	r.templates[name] = tpl
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on registration failure. Intended for init-time wiring.
func (r *Registry) MustRegister(tpl Template) {
	if err := r.Register(tpl); err != nil {
		panic(err)
	}
}

// List returns template names in registration order.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.templates[name]
	return ok
}

// Template returns the full template entry for name.
func (r *Registry) Template(name string) (Template, error) {
	if r != nil {
		if tpl, ok := r.templates[name]; ok {
			return tpl, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %s. Available: %s", ErrUnknownTemplate, name, strings.Join(r.List(), ", "))
}

// Get returns the schema registered under name.
func (r *Registry) Get(name string) (schema.Schema, error) {
	tpl, err := r.Template(name)
	if err != nil {
		return schema.Schema{}, err
	}
	return tpl.Schema, nil
}
