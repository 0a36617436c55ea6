// Package sitemap renders the XML sitemap from the route table. Because the
// entries come from the router, every URL listed is guaranteed to resolve,
// and every resolvable page is guaranteed to be listed.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/gdlandscaping/sitegen/pkg/render"
	"github.com/gdlandscaping/sitegen/pkg/router"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URL is a single urlset entry.
type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority"`
}

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Generator produces sitemap documents for a fixed route table and site
// origin.
type Generator struct {
	router  *router.Router
	baseURL string
}

type config struct {
	baseURL string
}

// Option customizes a Generator.
type Option func(*config)

// WithBaseURL overrides the site origin prepended to every path.
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// New returns a Generator for the given router.
func New(r *router.Router, options ...Option) *Generator {
	cfg := config{baseURL: "https://www.gdlandscapingllc.com"}
	for _, option := range options {
		option(&cfg)
	}
	return &Generator{router: r, baseURL: cfg.baseURL}
}

// URLs returns the sitemap entries in path order.
func (g *Generator) URLs() []URL {
	paths := g.router.Paths()
	urls := make([]URL, 0, len(paths))
	for _, path := range paths {
		page, err := g.router.Resolve(path)
		if err != nil {
			continue
		}
		urls = append(urls, g.entry(path, page))
	}
	return urls
}

// Generate renders the full XML document, declaration included.
func (g *Generator) Generate() ([]byte, error) {
	doc := URLSet{Xmlns: xmlns, URLs: g.URLs()}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap: marshal: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

func (g *Generator) entry(path string, page render.Page) URL {
	loc := g.baseURL + path
	if path == "/" {
		loc = g.baseURL + "/"
	}
	u := URL{Loc: loc}
	switch page.Kind {
	case render.KindHome:
		u.ChangeFreq = "weekly"
		u.Priority = 1.0
	case render.KindService:
		u.ChangeFreq = "monthly"
		u.Priority = 0.8
	case render.KindBlogIndex:
		u.ChangeFreq = "weekly"
		u.Priority = 0.6
	case render.KindArticle:
		u.ChangeFreq = "yearly"
		u.Priority = 0.5
		if page.Post != nil && !page.Post.PublishDate.IsZero() {
			u.LastMod = page.Post.PublishDate.Format("2006-01-02")
		}
	}
	return u
}
