package provider

import (
	"math/rand"
)

// Provider supplies named scalar values and the random stream they draw from.
// Resolvers that need raw entropy (ranges, choices) read Rand so that one seed
// reproduces every value in a run.
type Provider interface {
	// Generate produces one value for the named scalar kind. Unknown kinds
	// fail with schema.ErrUnknownFieldType.
	Generate(kind string) (any, error)
	// Has reports whether kind is in the catalogue.
	Has(kind string) bool
	// Kinds lists every scalar kind in catalogue order.
	Kinds() []string
	// Pattern replaces '#' with a digit and '?' with a letter.
	Pattern(pattern string) string
	// Rand exposes the shared random stream.
	Rand() *rand.Rand
	// Locale reports the effective locale.
	Locale() string
}
