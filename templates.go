package sitegen

import (
	"io/fs"

	"github.com/gdlandscaping/sitegen/pkg/content"
	"github.com/gdlandscaping/sitegen/pkg/renderers/pages"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return pages.TemplatesFS()
}

// EmbeddedContent exposes the authored content files backing the default
// registry.
func EmbeddedContent() fs.FS {
	return content.DataFS()
}
