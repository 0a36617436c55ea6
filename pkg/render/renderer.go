package render

import (
	"context"

	"github.com/gdlandscaping/sitegen/pkg/content"
)

// PageKind discriminates the page variants a renderer can be asked for.
type PageKind string

const (
	KindService   PageKind = "service"
	KindArticle   PageKind = "article"
	KindBlogIndex PageKind = "blog-index"
	KindHome      PageKind = "home"
	KindNotFound  PageKind = "not-found"
)

// Page is the unit of work handed to a renderer: the resolved kind plus
// whichever content payload that kind carries.
type Page struct {
	Kind   PageKind
	Record *content.ServiceContentRecord
	Post   *content.BlogPost
	Posts  []*content.BlogPost
}

// Renderer converts a resolved Page into a byte representation. HTML is the
// only flavour shipped today; the interface leaves room for AMP or feed
// renderers without touching the pipeline.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options Options) ([]byte, error)
}
