// Package templates exposes files embedded into the pinset binary.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed config.toml
var files embed.FS

// Read returns the embedded template at name.
func Read(name string) ([]byte, error) {
	return fs.ReadFile(files, name)
}
