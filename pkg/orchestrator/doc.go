// Package orchestrator wires the schema source → generator → formatter
// pipeline behind a single Generate call. Schema sources are built-in
// templates, inline schema text, prebuilt schemas, or an OpenAPI operation.
package orchestrator
