package render

import "sort"

// Theme carries resolved branding for a render pass: token values plus the
// CSS custom properties derived from them. Resolved once at startup and
// shared across requests; renderers must treat it as read-only.
type Theme struct {
	Name    string
	Variant string
	Tokens  map[string]string
	CSSVars map[string]string
}

// StyleAttr renders the CSS variables as an inline style declaration for the
// page root. Empty when no variables are set.
func (t *Theme) StyleAttr() string {
	if t == nil || len(t.CSSVars) == 0 {
		return ""
	}
	out := ""
	for _, name := range sortedKeys(t.CSSVars) {
		out += name + ": " + t.CSSVars[name] + "; "
	}
	return out[:len(out)-1]
}

// Options describe per-request data renderers can use without mutating the
// content pipeline.
type Options struct {
	// Theme supplies resolved branding tokens. Nil renders with the
	// stylesheet defaults.
	Theme *Theme
	// Hidden adds extra hidden inputs to the embedded lead form (attribution
	// tags, experiment flags). The source page id is always present and
	// cannot be overridden here.
	Hidden map[string]string
	// Values pre-populates lead form controls, used to re-display user input
	// after a failed relay call.
	Values map[string]string
	// FormError is a user-facing, retryable message shown above the lead
	// form after a collaborator failure.
	FormError string
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
