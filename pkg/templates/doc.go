// Package templates holds named dataset schemas. The built-in set is embedded
// YAML; further directories can be layered on with LoadFS.
package templates
