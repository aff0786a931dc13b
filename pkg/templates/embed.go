package templates

import (
	"embed"
	"io/fs"
)

//go:embed builtin/*.yaml
var embeddedTemplates embed.FS

// EmbeddedFS returns the bundled template definitions. Callers may pass this
// filesystem to LoadFS alongside their own directories.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "builtin")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
