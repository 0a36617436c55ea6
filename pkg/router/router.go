// Package router maps URL paths to resolved pages. The route table is
// derived from the content registry at construction, so the set of valid
// paths and the set of authored records can never drift apart. There is no
// pattern matching: the valid page set is small, finite, and intentionally
// not a full service x town cross product.
package router

import (
	"sort"
	"strings"

	"github.com/gdlandscaping/sitegen/pkg/content"
	"github.com/gdlandscaping/sitegen/pkg/render"
)

// Router resolves paths against the registry-derived route table. Safe for
// concurrent use after construction.
type Router struct {
	registry *content.Registry
	routes   map[string]render.Page
}

// New builds the route table: one entry per service record, one per
// article, plus the blog index and home page.
func New(registry *content.Registry) *Router {
	routes := make(map[string]render.Page)

	for _, record := range registry.Records() {
		routes[record.Path()] = render.Page{Kind: render.KindService, Record: record}
	}
	for _, post := range registry.BlogPosts() {
		routes[post.Path()] = render.Page{Kind: render.KindArticle, Post: post}
	}

	posts := registry.BlogPosts()
	routes["/blog"] = render.Page{Kind: render.KindBlogIndex, Posts: posts}
	routes["/"] = render.Page{Kind: render.KindHome, Posts: posts}

	return &Router{registry: registry, routes: routes}
}

// Resolve maps a request path to a page. Unknown paths return a not-found
// page alongside a content.NotFoundError so callers can set the status code
// and still render something.
func (r *Router) Resolve(path string) (render.Page, error) {
	page, ok := r.routes[Normalize(path)]
	if !ok {
		return render.Page{Kind: render.KindNotFound}, notFoundFor(path)
	}
	return page, nil
}

// Paths returns every routable path in deterministic order. The sitemap
// generator and the static build both walk this list.
func (r *Router) Paths() []string {
	out := make([]string, 0, len(r.routes))
	for path := range r.routes {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Normalize strips query strings, fragments, and trailing slashes so
// equivalent request paths hit the same table entry.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

func notFoundFor(path string) error {
	normalized := Normalize(path)
	if slug, ok := strings.CutPrefix(normalized, "/blog/"); ok {
		return &content.NotFoundError{BlogSlug: slug}
	}

	// Service page paths carry the /{service}-{town}-ct shape; recover the
	// pieces when possible so the error names what was asked for.
	if town, service, ok := splitServicePath(normalized); ok {
		return &content.NotFoundError{Service: service, TownSlug: town}
	}
	return &content.NotFoundError{Path: normalized}
}

func splitServicePath(path string) (town string, service content.ServiceType, ok bool) {
	trimmed, found := strings.CutSuffix(strings.TrimPrefix(path, "/"), "-ct")
	if !found {
		return "", "", false
	}
	for _, candidate := range content.ServiceTypes() {
		if rest, matched := strings.CutPrefix(trimmed, string(candidate)+"-"); matched {
			return rest, candidate, true
		}
	}
	return "", "", false
}
