package generator

import (
	"errors"
	"math/rand"

	"github.com/goliatone/go-datagen/pkg/provider"
)

// Context carries the random stream and value provider for one generation
// run. It is not safe for concurrent use.
type Context struct {
	rand     *rand.Rand
	provider provider.Provider
}

// NewContext binds a context to p, drawing entropy from p's stream.
func NewContext(p provider.Provider) (*Context, error) {
	if p == nil {
		return nil, errors.New("generator: provider is required")
	}
	r := p.Rand()
	if r == nil {
		return nil, errors.New("generator: provider has no random stream")
	}
	return &Context{rand: r, provider: p}, nil
}

// NewSeededContext is shorthand for a Faker provider seeded with seed.
func NewSeededContext(seed int64, options ...provider.Option) *Context {
	opts := append([]provider.Option{provider.WithSeed(seed)}, options...)
	p := provider.New(opts...)
	return &Context{rand: p.Rand(), provider: p}
}

// Provider returns the bound value provider.
func (c *Context) Provider() provider.Provider {
	return c.provider
}

// Rand returns the shared random stream.
func (c *Context) Rand() *rand.Rand {
	return c.rand
}
