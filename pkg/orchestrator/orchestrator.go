// Package orchestrator coordinates the pipeline from request path to
// rendered page: registry lookup via the router, theme resolution, then the
// renderer registry. It applies working defaults (embedded content, the
// pages renderer, the company theme) while remaining open to dependency
// injection.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/gdlandscaping/sitegen/internal/branding"
	"github.com/gdlandscaping/sitegen/pkg/content"
	"github.com/gdlandscaping/sitegen/pkg/crosslink"
	"github.com/gdlandscaping/sitegen/pkg/render"
	"github.com/gdlandscaping/sitegen/pkg/renderers/pages"
	"github.com/gdlandscaping/sitegen/pkg/router"
)

const defaultRendererName = "pages"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithContentRegistry injects a pre-built content registry.
func WithContentRegistry(registry *content.Registry) Option {
	return func(o *Orchestrator) {
		o.content = registry
	}
}

// WithCrossLinks injects a cross-link engine shared with the renderer.
func WithCrossLinks(engine *crosslink.Engine) Option {
	return func(o *Orchestrator) {
		o.crosslinks = engine
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector passes a go-theme selector so theme/variant choices can
// be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// WithThemeDefaults sets the theme and variant applied when a request does
// not name one.
func WithThemeDefaults(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// Orchestrator resolves paths and renders pages.
type Orchestrator struct {
	content         *content.Registry
	crosslinks      *crosslink.Engine
	routes          *router.Router
	registry        *render.Registry
	themes          theme.ThemeSelector
	defaultRenderer string
	defaultTheme    string
	defaultVariant  string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		defaultTheme:    branding.DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render one page.
type Request struct {
	// Path is the URL path to resolve, e.g. "/fall-cleanup-berlin-ct".
	Path string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select branding for this render. Empty
	// values fall back to the configured defaults.
	ThemeName    string
	ThemeVariant string

	// Options carries per-request render data such as extra hidden form
	// fields or a lead relay error to surface. The resolved theme is filled
	// in by the orchestrator.
	Options render.Options
}

// Result is a rendered page plus the metadata a server needs to serve it.
type Result struct {
	Path        string
	ContentType string
	Body        []byte
}

// Generate resolves the request path and renders it. Unknown paths return
// the rendered not-found page together with a content.NotFoundError so
// callers can pick the right status code.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	page, resolveErr := o.routes.Resolve(req.Path)
	if resolveErr != nil && !content.IsNotFound(resolveErr) {
		return Result{}, resolveErr
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	options := req.Options
	if options.Theme == nil {
		resolved, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return Result{}, err
		}
		options.Theme = resolved
	}

	body, err := renderer.Render(ctx, page, options)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render %s: %w", router.Normalize(req.Path), err)
	}

	result := Result{
		Path:        router.Normalize(req.Path),
		ContentType: renderer.ContentType(),
		Body:        body,
	}
	return result, resolveErr
}

// GenerateAll renders every routable page, used by the static build. Paths
// come back in deterministic order.
func (o *Orchestrator) GenerateAll(ctx context.Context) ([]Result, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	paths := o.routes.Paths()
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		result, err := o.Generate(ctx, Request{Path: path})
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Router exposes the route table built from the content registry, shared
// with the sitemap generator and the web server.
func (o *Orchestrator) Router() *router.Router {
	return o.routes
}

// Content exposes the underlying registry.
func (o *Orchestrator) Content() *content.Registry {
	return o.content
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) resolveTheme(name, variant string) (*render.Theme, error) {
	if o.themes == nil {
		return nil, nil
	}
	if name == "" {
		name = o.defaultTheme
	}
	if variant == "" {
		variant = o.defaultVariant
	}
	selection, err := o.themes.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	resolved := branding.Resolve(selection)
	return &resolved, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.content == nil {
		registry, err := content.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load content: %w", err)
			o.defaultsApplied = true
			return
		}
		o.content = registry
	}
	o.routes = router.New(o.content)

	if o.crosslinks == nil {
		engine, err := crosslink.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load cross links: %w", err)
			o.defaultsApplied = true
			return
		}
		o.crosslinks = engine
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := pages.New(pages.WithCrossLinks(o.crosslinks))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if o.themes == nil {
		selector, err := branding.NewSelector()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default themes: %w", err)
		} else {
			o.themes = selector
		}
	}

	o.defaultsApplied = true
}
