package format

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds a formatter from options. Factories validate the options
// they consume and fail with ErrInvalidOptions.
type Factory func(Options) (Formatter, error)

// Registry stores formatter factories by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default returns a registry holding every built-in format.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(FormatJSON, NewJSON)
	r.MustRegister(FormatCSV, NewCSV)
	r.MustRegister(FormatSQL, NewSQL)
	r.MustRegister(FormatYAML, NewYAML)
	r.MustRegister(FormatHTML, NewHTML)
	r.MustRegister(FormatTemplate, NewTemplate)
	return r
}

// Register adds a factory under name. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("format: formatter name is required")
	}
	if factory == nil {
		return fmt.Errorf("format: factory for %q is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("format: formatter %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// New builds the formatter registered under name.
func (r *Registry) New(name string, options Options) (Formatter, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	formatter, err := factory(options)
	if err != nil {
		return nil, fmt.Errorf("format: %s: %w", name, err)
	}
	return formatter, nil
}

// Get retrieves a factory by name.
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s. Available: %s", ErrUnknownFormat, name, strings.Join(r.List(), ", "))
	}
	return factory, nil
}

// List returns a sorted list of format names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a format is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[name]
	return ok
}
