package crosslink

import (
	"embed"
	"io/fs"
)

//go:embed data/*.yaml
var embeddedData embed.FS

// DataFS exposes the embedded adjacency tables.
func DataFS() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return embeddedData
	}
	return sub
}
