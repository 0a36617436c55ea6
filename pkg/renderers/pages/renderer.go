// Package pages is the HTML renderer for the public site: one template
// component per service category plus article, blog index, home, and 404
// layouts, all driven by authored content records.
package pages

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/gdlandscaping/sitegen/pkg/content"
	"github.com/gdlandscaping/sitegen/pkg/crosslink"
	"github.com/gdlandscaping/sitegen/pkg/render"
	rendertemplate "github.com/gdlandscaping/sitegen/pkg/render/template"
	"github.com/gdlandscaping/sitegen/pkg/render/template/pongo2tpl"
)

// Business identifies the company across every page: header, footer, and the
// synthesized LocalBusiness structured data.
type Business struct {
	Name  string
	Phone string
	URL   string
}

var defaultBusiness = Business{
	Name:  "GD Landscaping LLC",
	Phone: "(860) 555-0134",
	URL:   "https://www.gdlandscapingllc.com",
}

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	crossLinks       *crosslink.Engine
	business         Business
	formAction       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithCrossLinks wires the engine that produces related-service and
// related-article blocks. Without it those blocks render empty.
func WithCrossLinks(engine *crosslink.Engine) Option {
	return func(cfg *config) {
		cfg.crossLinks = engine
	}
}

// WithBusiness overrides the business identity baked into page chrome and
// structured data.
func WithBusiness(business Business) Option {
	return func(cfg *config) {
		if business.Name != "" {
			cfg.business.Name = business.Name
		}
		if business.Phone != "" {
			cfg.business.Phone = business.Phone
		}
		if business.URL != "" {
			cfg.business.URL = business.URL
		}
	}
}

// WithFormAction overrides the lead form submit path.
func WithFormAction(action string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(action) != "" {
			cfg.formAction = action
		}
	}
}

// Renderer renders resolved pages to HTML.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	crossLinks *crosslink.Engine
	business   Business
	formAction string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the pages renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		business:   defaultBusiness,
		formAction: "/api/leads",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo2tpl.New(
			pongo2tpl.WithFS(cfg.templateFS),
			pongo2tpl.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("pages renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		crossLinks: cfg.crossLinks,
		business:   cfg.business,
		formAction: cfg.formAction,
	}, nil
}

func (r *Renderer) Name() string {
	return "pages"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render dispatches on the page kind. Service pages fail fast on malformed
// records; a partially blank SEO-facing page is worse than a build failure.
func (r *Renderer) Render(_ context.Context, page render.Page, options render.Options) ([]byte, error) {
	switch page.Kind {
	case render.KindService:
		return r.renderService(page.Record, options)
	case render.KindArticle:
		return r.renderArticle(page.Post, options)
	case render.KindBlogIndex:
		return r.renderBlogIndex(page.Posts, options)
	case render.KindHome:
		return r.renderHome(page.Posts, options)
	case render.KindNotFound:
		return r.renderTemplate("templates/not_found.tmpl", r.baseContext(options, map[string]any{
			"seo": map[string]any{"title": "Page Not Found | " + r.business.Name},
		}))
	default:
		return nil, fmt.Errorf("pages renderer: unknown page kind %q", page.Kind)
	}
}

func (r *Renderer) renderService(record *content.ServiceContentRecord, options render.Options) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("pages renderer: service page without record")
	}
	if err := checkRequired(record); err != nil {
		return nil, err
	}

	jsonld, err := structuredData(record, r.business)
	if err != nil {
		return nil, err
	}

	ctx := r.baseContext(options, map[string]any{
		"record":  record,
		"seo":     record.SEO,
		"jsonld":  jsonld,
		"related": r.relatedBlocks(record),
		"form":    r.formContext(record, options),
	})

	return r.renderTemplate(serviceTemplate(record.Service), ctx)
}

func (r *Renderer) renderArticle(post *content.BlogPost, options render.Options) ([]byte, error) {
	if post == nil {
		return nil, fmt.Errorf("pages renderer: article page without post")
	}

	ctx := r.baseContext(options, map[string]any{
		"post": postContext(post),
		"seo": map[string]any{
			"title":        post.Title + " | " + r.business.Name,
			"description":  post.Excerpt,
			"canonicalUrl": r.business.URL + post.Path(),
		},
	})
	return r.renderTemplate("templates/article.tmpl", ctx)
}

func (r *Renderer) renderBlogIndex(posts []*content.BlogPost, options render.Options) ([]byte, error) {
	ctx := r.baseContext(options, map[string]any{
		"posts": postContexts(posts),
		"seo": map[string]any{
			"title":        "Lawn & Landscaping Guides | " + r.business.Name,
			"description":  "Seasonal guides and how-tos from our crew.",
			"canonicalUrl": r.business.URL + "/blog",
		},
	})
	return r.renderTemplate("templates/blog_index.tmpl", ctx)
}

func (r *Renderer) renderHome(posts []*content.BlogPost, options render.Options) ([]byte, error) {
	var towns []map[string]any
	if r.crossLinks != nil {
		slugs := r.crossLinks.Towns()
		sort.Strings(slugs)
		for _, town := range slugs {
			towns = append(towns, map[string]any{
				"slug":  town,
				"name":  townTitle(town),
				"links": r.decorateServiceLinks(r.crossLinks.RelatedServices(town, "")),
			})
		}
	}

	ctx := r.baseContext(options, map[string]any{
		"towns": towns,
		"posts": postContexts(posts),
		"seo": map[string]any{
			"title":        r.business.Name + " | Landscaping in Central Connecticut",
			"description":  "Lawn care, snow removal, and seasonal cleanups across central Connecticut.",
			"canonicalUrl": r.business.URL + "/",
		},
	})
	return r.renderTemplate("templates/home.tmpl", ctx)
}

func (r *Renderer) renderTemplate(name string, ctx map[string]any) ([]byte, error) {
	out, err := r.templates.RenderTemplate(name, ctx)
	if err != nil {
		return nil, fmt.Errorf("pages renderer: render %s: %w", name, err)
	}
	return []byte(out), nil
}

func (r *Renderer) baseContext(options render.Options, extra map[string]any) map[string]any {
	ctx := map[string]any{
		"business": map[string]any{
			"name":  r.business.Name,
			"phone": r.business.Phone,
			"url":   r.business.URL,
		},
		"theme": themeContext(options.Theme),
	}
	for key, value := range extra {
		ctx[key] = value
	}
	return ctx
}

// relatedBlocks asks the cross-link engine for sibling pages, passing the
// current service so self-links are excluded. Icon names become sanitized
// inline SVG markup here so templates can emit them verbatim.
func (r *Renderer) relatedBlocks(record *content.ServiceContentRecord) map[string]any {
	if r.crossLinks == nil {
		return map[string]any{"services": nil, "articles": nil}
	}

	services := r.decorateServiceLinks(r.crossLinks.RelatedServices(record.TownSlug, record.Service))

	var articles []map[string]any
	for _, link := range r.crossLinks.RelatedArticles(record.Service) {
		articles = append(articles, map[string]any{
			"title":       link.Title,
			"url":         link.URL,
			"iconSVG":     iconMarkup(link.Icon),
			"description": link.Description,
		})
	}

	return map[string]any{"services": services, "articles": articles}
}

func (r *Renderer) decorateServiceLinks(links []crosslink.ServiceLink) []map[string]any {
	var out []map[string]any
	for _, link := range links {
		out = append(out, map[string]any{
			"name":    link.Name,
			"url":     link.URL,
			"iconSVG": iconMarkup(link.Icon),
			"type":    string(link.Type),
		})
	}
	return out
}

// formContext assembles the embedded lead form configuration. The source
// page id is always attached; option-supplied hidden fields cannot shadow it.
func (r *Renderer) formContext(record *content.ServiceContentRecord, options render.Options) map[string]any {
	hidden := []map[string]string{{"name": "source", "value": record.Quote.Source}}
	for _, name := range sortedKeys(options.Hidden) {
		if name == "source" {
			continue
		}
		hidden = append(hidden, map[string]string{"name": name, "value": options.Hidden[name]})
	}

	values := map[string]string{}
	for name, value := range options.Values {
		values[name] = value
	}

	return map[string]any{
		"action": r.formAction,
		"quote":  record.Quote,
		"hidden": hidden,
		"values": values,
		"error":  options.FormError,
	}
}

// postContext flattens a blog post for templates, formatting the publish
// date for display and keeping the machine-readable form alongside it.
func postContext(post *content.BlogPost) map[string]any {
	var sections []map[string]any
	for _, section := range post.Sections {
		sections = append(sections, map[string]any{
			"heading":    section.Heading,
			"paragraphs": section.Paragraphs,
			"bullets":    section.Bullets,
		})
	}
	return map[string]any{
		"slug":         post.Slug,
		"title":        post.Title,
		"excerpt":      post.Excerpt,
		"publishDate":  post.PublishDate.Format("January 2, 2006"),
		"dateISO":      post.PublishDate.Format("2006-01-02"),
		"readingTime":  post.ReadingTime,
		"heroOverline": post.Overline,
		"sections":     sections,
	}
}

func postContexts(posts []*content.BlogPost) []map[string]any {
	var out []map[string]any
	for _, post := range posts {
		out = append(out, postContext(post))
	}
	return out
}

func themeContext(theme *render.Theme) map[string]any {
	if theme == nil {
		return map[string]any{"styleAttr": ""}
	}
	return map[string]any{
		"name":      theme.Name,
		"variant":   theme.Variant,
		"tokens":    theme.Tokens,
		"styleAttr": theme.StyleAttr(),
	}
}

func serviceTemplate(service content.ServiceType) string {
	return "templates/services/" + string(service) + ".tmpl"
}

func checkRequired(record *content.ServiceContentRecord) error {
	page := record.Path()
	switch {
	case strings.TrimSpace(record.Hero.Title) == "":
		return &content.MalformedRecordError{Page: page, Field: "hero.title", Reason: "required"}
	case strings.TrimSpace(record.TownName) == "":
		return &content.MalformedRecordError{Page: page, Field: "townName", Reason: "required"}
	case strings.TrimSpace(record.SEO.CanonicalURL) == "":
		return &content.MalformedRecordError{Page: page, Field: "seo.canonicalUrl", Reason: "required"}
	}
	return nil
}
