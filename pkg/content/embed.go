package content

import (
	"embed"
	"io/fs"
)

//go:embed data/services/*.yaml data/blog/*.yaml
var embeddedData embed.FS

// DataFS exposes the embedded content bundle rooted at data/. Build tooling
// that needs the raw YAML (the scaffold command, for one) reads through this
// instead of duplicating the tree.
func DataFS() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		// Only reachable if the embed directive and the path drift apart.
		return embeddedData
	}
	return sub
}
