package sitemap_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/gdlandscaping/sitegen/pkg/content"
	"github.com/gdlandscaping/sitegen/pkg/router"
	"github.com/gdlandscaping/sitegen/pkg/sitemap"
)

func newGenerator(t *testing.T, options ...sitemap.Option) (*sitemap.Generator, *router.Router) {
	t.Helper()
	registry, err := content.New()
	if err != nil {
		t.Fatalf("content.New() error = %v", err)
	}
	r := router.New(registry)
	return sitemap.New(r, options...), r
}

func TestGenerateIsWellFormed(t *testing.T) {
	g, _ := newGenerator(t)

	out, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.HasPrefix(string(out), xml.Header) {
		t.Error("output missing XML declaration")
	}

	var doc sitemap.URLSet
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if doc.Xmlns != "http://www.sitemaps.org/schemas/sitemap/0.9" {
		t.Errorf("xmlns = %q", doc.Xmlns)
	}
	if len(doc.URLs) == 0 {
		t.Fatal("urlset is empty")
	}
}

func TestEveryEntryResolves(t *testing.T) {
	g, r := newGenerator(t)

	const base = "https://www.gdlandscapingllc.com"
	for _, u := range g.URLs() {
		if !strings.HasPrefix(u.Loc, base) {
			t.Errorf("loc %q missing base URL", u.Loc)
			continue
		}
		path := strings.TrimPrefix(u.Loc, base)
		if _, err := r.Resolve(path); err != nil {
			t.Errorf("sitemap entry %q does not resolve: %v", u.Loc, err)
		}
	}
}

func TestEveryRouteListed(t *testing.T) {
	g, r := newGenerator(t)

	listed := map[string]bool{}
	for _, u := range g.URLs() {
		listed[u.Loc] = true
	}
	const base = "https://www.gdlandscapingllc.com"
	for _, path := range r.Paths() {
		loc := base + path
		if path == "/" {
			loc = base + "/"
		}
		if !listed[loc] {
			t.Errorf("route %q missing from sitemap", path)
		}
	}
}

func TestExcludedCombinationAbsent(t *testing.T) {
	g, _ := newGenerator(t)

	for _, u := range g.URLs() {
		if strings.Contains(u.Loc, "fertilization-weed-control-cromwell-ct") {
			t.Errorf("sitemap lists unauthored page %q", u.Loc)
		}
	}
}

func TestWithBaseURL(t *testing.T) {
	g, _ := newGenerator(t, sitemap.WithBaseURL("https://staging.example.com/"))

	urls := g.URLs()
	if len(urls) == 0 {
		t.Fatal("no URLs")
	}
	for _, u := range urls {
		if !strings.HasPrefix(u.Loc, "https://staging.example.com/") {
			t.Errorf("loc %q not rebased", u.Loc)
		}
	}
}

func TestArticleLastMod(t *testing.T) {
	g, _ := newGenerator(t)

	found := false
	for _, u := range g.URLs() {
		if strings.Contains(u.Loc, "/blog/") {
			found = true
			if u.LastMod == "" {
				t.Errorf("article %q missing lastmod", u.Loc)
			}
		}
	}
	if !found {
		t.Fatal("no article entries in sitemap")
	}
}
