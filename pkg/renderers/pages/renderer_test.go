package pages

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdlandscaping/sitegen/pkg/content"
	"github.com/gdlandscaping/sitegen/pkg/crosslink"
	"github.com/gdlandscaping/sitegen/pkg/render"
)

func newTestRenderer(t *testing.T) (*Renderer, *content.Registry) {
	t.Helper()

	registry, err := content.New()
	if err != nil {
		t.Fatalf("content.New() error = %v", err)
	}
	links, err := crosslink.New()
	if err != nil {
		t.Fatalf("crosslink.New() error = %v", err)
	}
	renderer, err := New(WithCrossLinks(links))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return renderer, registry
}

func renderService(t *testing.T, renderer *Renderer, registry *content.Registry, service content.ServiceType, town string, options render.Options) string {
	t.Helper()

	record, err := registry.Record(service, town)
	if err != nil {
		t.Fatalf("Record(%s, %s) error = %v", service, town, err)
	}
	out, err := renderer.Render(context.Background(), render.Page{Kind: render.KindService, Record: record}, options)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return string(out)
}

func TestRenderServicePage(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	html := renderService(t, renderer, registry, content.ServiceLawnCare, "berlin", render.Options{})

	if got := strings.Count(html, "<h1"); got != 1 {
		t.Errorf("h1 count = %d, want 1", got)
	}
	if !strings.Contains(html, "Professional Lawn Care in Berlin, CT") {
		t.Error("missing hero title")
	}
	if !strings.Contains(html, `<link rel="canonical" href="https://www.gdlandscapingllc.com/lawn-care-berlin-ct">`) {
		t.Error("missing canonical link")
	}
	if !strings.Contains(html, `<input type="hidden" name="source" value="lawn-care-berlin-ct">`) {
		t.Error("missing hidden source field")
	}
}

func TestRenderServicePackagesGrid(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	html := renderService(t, renderer, registry, content.ServiceLawnCare, "berlin", render.Options{})

	for _, price := range []string{"$45/visit", "$65/visit", "$110/visit"} {
		if !strings.Contains(html, price) {
			t.Errorf("missing package price %q", price)
		}
	}
	if !strings.Contains(html, "Most Popular") {
		t.Error("missing popular flag")
	}

	// Authored order survives the render.
	basic := strings.Index(html, "Essential Mow")
	full := strings.Index(html, "Full Service")
	estate := strings.Index(html, "Estate Plan")
	if basic < 0 || full < 0 || estate < 0 || basic > full || full > estate {
		t.Errorf("package order wrong: %d, %d, %d", basic, full, estate)
	}

	// A page with tiers never shows the custom-quote fallback.
	if strings.Contains(html, "Request a Custom Quote") {
		t.Error("packages page rendered the custom quote block")
	}
}

func TestRenderServiceQuoteFallback(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	html := renderService(t, renderer, registry, content.ServiceFallCleanup, "berlin", render.Options{})

	if !strings.Contains(html, "Request a Custom Quote") {
		t.Error("missing custom quote block")
	}
	if strings.Contains(html, "package-grid") {
		t.Error("no-package page rendered the package grid")
	}
	if !strings.Contains(html, `name="source" value="fall-cleanup-berlin-ct"`) {
		t.Error("missing hidden source field")
	}
}

func TestRenderServiceStatStrip(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	record, err := registry.Record(content.ServiceLawnCare, "berlin")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	// The strip renders whatever cardinality the record carries.
	five := *record
	five.Stats = []content.Stat{
		{Value: "500+", Label: "Lawns Serviced"},
		{Value: "15+", Label: "Years in Berlin"},
		{Value: "48hr", Label: "Quote Turnaround"},
		{Value: "2", Label: "Crews on Route"},
		{Value: "100%", Label: "Local Team"},
	}
	out, err := renderer.Render(context.Background(), render.Page{Kind: render.KindService, Record: &five}, render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := string(out)
	if got := strings.Count(html, `<div class="stat">`); got != 5 {
		t.Errorf("stat count = %d, want 5", got)
	}
	last := -1
	for _, stat := range five.Stats {
		idx := strings.Index(html, `<span class="stat-value">`+stat.Value+`</span>`)
		if idx < 0 {
			t.Errorf("missing stat %q", stat.Value)
			continue
		}
		if idx < last {
			t.Errorf("stat %q out of order", stat.Value)
		}
		last = idx
	}

	none := *record
	none.Stats = nil
	out, err = renderer.Render(context.Background(), render.Page{Kind: render.KindService, Record: &none}, render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(string(out), "stat-strip") {
		t.Error("stat strip rendered for a record without stats")
	}
}

func TestRenderServiceHighlightsOrder(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	record, err := registry.Record(content.ServiceLawnCare, "berlin")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	// Highlights render verbatim in authored order, duplicates included.
	modified := *record
	modified.Highlights = []string{"Core aeration", "Overseeding", "Core aeration"}
	out, err := renderer.Render(context.Background(), render.Page{Kind: render.KindService, Record: &modified}, render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := string(out)

	if got := strings.Count(html, `<li class="highlight-item">Core aeration</li>`); got != 2 {
		t.Errorf("duplicate highlight count = %d, want 2", got)
	}
	first := strings.Index(html, `<li class="highlight-item">Core aeration</li>`)
	middle := strings.Index(html, `<li class="highlight-item">Overseeding</li>`)
	last := strings.LastIndex(html, `<li class="highlight-item">Core aeration</li>`)
	if first < 0 || middle < 0 || first > middle || middle > last {
		t.Errorf("highlight order wrong: %d, %d, %d", first, middle, last)
	}
}

func TestRenderServiceRelatedBlocks(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	html := renderService(t, renderer, registry, content.ServiceLawnCare, "berlin", render.Options{})

	start := strings.Index(html, "related-services")
	if start < 0 {
		t.Fatal("missing related services section")
	}
	section := html[start:]
	section = section[:strings.Index(section, "</section>")]

	if strings.Contains(section, "/lawn-care-berlin-ct") {
		t.Error("related services links back to the current page")
	}
	if !strings.Contains(section, "/snow-removal-berlin-ct") {
		t.Error("missing sibling service link")
	}
	if !strings.Contains(section, "<svg") {
		t.Error("missing inline icon markup")
	}
}

func TestRenderServiceStructuredData(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	html := renderService(t, renderer, registry, content.ServiceLawnCare, "berlin", render.Options{})

	if got := strings.Count(html, `<script type="application/ld+json">`); got != 1 {
		t.Errorf("json-ld script count = %d, want 1", got)
	}
	if !strings.Contains(html, `"@type":"LocalBusiness"`) {
		t.Error("missing synthesized LocalBusiness block")
	}
	if !strings.Contains(html, `"@type":"Service"`) {
		t.Error("missing authored Service fragment")
	}
}

func TestHiddenFieldsCannotShadowSource(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	html := renderService(t, renderer, registry, content.ServiceLawnCare, "berlin", render.Options{
		Hidden: map[string]string{
			"source":   "other-page",
			"campaign": "spring-mailer",
		},
	})

	if got := strings.Count(html, `name="source"`); got != 1 {
		t.Errorf("source field count = %d, want 1", got)
	}
	if !strings.Contains(html, `name="source" value="lawn-care-berlin-ct"`) {
		t.Error("source field does not carry the record page id")
	}
	if !strings.Contains(html, `name="campaign" value="spring-mailer"`) {
		t.Error("missing extra hidden field")
	}
}

func TestFormErrorAndValuesRedisplay(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	html := renderService(t, renderer, registry, content.ServiceLawnCare, "berlin", render.Options{
		FormError: "Something went wrong. Please try again.",
		Values: map[string]string{
			"customerName": "Dana",
			"message":      "Half-acre corner lot",
		},
	})

	if !strings.Contains(html, `<p class="form-error" role="alert">Something went wrong. Please try again.</p>`) {
		t.Error("missing form error message")
	}
	if !strings.Contains(html, `name="customerName" value="Dana"`) {
		t.Error("missing re-displayed input value")
	}
	if !strings.Contains(html, "<textarea name=\"message\">Half-acre corner lot</textarea>") {
		t.Error("missing re-displayed message")
	}
}

func TestRenderServiceThemeStyle(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	html := renderService(t, renderer, registry, content.ServiceLawnCare, "berlin", render.Options{
		Theme: &render.Theme{
			Name:    "gdl",
			CSSVars: map[string]string{"--color-primary": "#1b5e20"},
		},
	})

	if !strings.Contains(html, `<html lang="en" style="--color-primary: #1b5e20;">`) {
		t.Errorf("missing theme style attribute")
	}
}

func TestRenderArticle(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	post, err := registry.BlogPost("fall-cleanup-checklist-connecticut")
	if err != nil {
		t.Fatalf("BlogPost() error = %v", err)
	}

	out, err := renderer.Render(context.Background(), render.Page{Kind: render.KindArticle, Post: post}, render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := string(out)

	if !strings.Contains(html, "The Complete Fall Cleanup Checklist for Connecticut Homeowners") {
		t.Error("missing article title")
	}
	if !strings.Contains(html, `<time datetime="2024-10-07">October 7, 2024</time>`) {
		t.Errorf("missing formatted publish date")
	}
	if !strings.Contains(html, `href="https://www.gdlandscapingllc.com/blog/fall-cleanup-checklist-connecticut"`) {
		t.Error("missing canonical link")
	}
}

func TestRenderBlogIndex(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	posts := registry.BlogPosts()

	out, err := renderer.Render(context.Background(), render.Page{Kind: render.KindBlogIndex, Posts: posts}, render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := string(out)

	for _, post := range posts {
		if !strings.Contains(html, `href="/blog/`+post.Slug+`"`) {
			t.Errorf("missing link for post %s", post.Slug)
		}
	}

	// Newest first.
	newer := strings.Index(html, "/blog/snow-removal-preparation-guide")
	older := strings.Index(html, "/blog/spring-lawn-care-tips")
	if newer < 0 || older < 0 || newer > older {
		t.Errorf("post order wrong: %d, %d", newer, older)
	}
}

func TestRenderHome(t *testing.T) {
	renderer, registry := newTestRenderer(t)

	out, err := renderer.Render(context.Background(), render.Page{Kind: render.KindHome, Posts: registry.BlogPosts()}, render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := string(out)

	if !strings.Contains(html, "Rocky Hill") {
		t.Error("missing town directory entry")
	}
	if !strings.Contains(html, `href="/lawn-care-berlin-ct"`) {
		t.Error("missing town service link")
	}
	if !strings.Contains(html, `href="/blog/fall-cleanup-checklist-connecticut"`) {
		t.Error("missing recent post link")
	}
}

func TestRenderNotFound(t *testing.T) {
	renderer, _ := newTestRenderer(t)

	out, err := renderer.Render(context.Background(), render.Page{Kind: render.KindNotFound}, render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(out), "Page Not Found") {
		t.Error("missing not found heading")
	}
}

func TestRenderUnknownKind(t *testing.T) {
	renderer, _ := newTestRenderer(t)
	if _, err := renderer.Render(context.Background(), render.Page{Kind: "feed"}, render.Options{}); err == nil {
		t.Error("Render(unknown kind) error = nil")
	}
}

func TestRenderMalformedRecord(t *testing.T) {
	renderer, registry := newTestRenderer(t)
	record, err := registry.Record(content.ServiceLawnCare, "berlin")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	broken := *record
	broken.Hero.Title = "  "

	_, err = renderer.Render(context.Background(), render.Page{Kind: render.KindService, Record: &broken}, render.Options{})
	var malformed *content.MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("Render() error = %v, want MalformedRecordError", err)
	}
	if malformed.Field != "hero.title" {
		t.Errorf("Field = %q, want hero.title", malformed.Field)
	}
}

func TestWithBusiness(t *testing.T) {
	links, err := crosslink.New()
	if err != nil {
		t.Fatalf("crosslink.New() error = %v", err)
	}
	renderer, err := New(
		WithCrossLinks(links),
		WithBusiness(Business{Name: "Side Yard Co", Phone: "(203) 555-0101"}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	registry, err := content.New()
	if err != nil {
		t.Fatalf("content.New() error = %v", err)
	}

	html := renderService(t, renderer, registry, content.ServiceLawnCare, "berlin", render.Options{})
	if !strings.Contains(html, "Side Yard Co") {
		t.Error("missing overridden business name")
	}
	if !strings.Contains(html, `href="tel:(203) 555-0101"`) {
		t.Error("missing overridden phone")
	}
}

func TestTownTitle(t *testing.T) {
	cases := map[string]string{
		"berlin":      "Berlin",
		"rocky-hill":  "Rocky Hill",
		"new-britain": "New Britain",
	}
	for slug, want := range cases {
		if got := townTitle(slug); got != want {
			t.Errorf("townTitle(%q) = %q, want %q", slug, got, want)
		}
	}
}

func TestIconMarkup(t *testing.T) {
	if got := iconMarkup("mower"); !strings.Contains(got, "<svg") {
		t.Errorf("iconMarkup(mower) = %q, want inline svg", got)
	}
	if got := iconMarkup("unknown"); got != "" {
		t.Errorf("iconMarkup(unknown) = %q, want empty", got)
	}
}
