// Package template defines the narrow contract page renderers use to talk to
// a template engine, keeping the engine swappable behind the interface.
package template

// TemplateRenderer renders a named template with the given data.
type TemplateRenderer interface {
	RenderTemplate(name string, data any) (string, error)
}
