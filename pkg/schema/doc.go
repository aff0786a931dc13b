// Package schema defines the dataset model shared by the generator, template
// registry, and formatters: field specifications (a closed set of variants),
// ordered schemas, and ordered records. Schema text is accepted as JSON or
// YAML; both parsers preserve field declaration order because record columns
// follow it.
package schema
