// Package openapi derives dataset schemas from OpenAPI request bodies. It
// exposes the loader and parser contracts; the kin-openapi backed
// implementations live under internal/openapi.
package openapi
