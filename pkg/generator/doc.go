// Package generator interprets field specifications. Resolve turns a single
// schema.FieldSpec into a value; Generate applies it across a schema to build
// records. All randomness comes from the Context, which shares its stream with
// the value provider.
package generator
