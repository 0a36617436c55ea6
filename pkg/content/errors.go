package content

import (
	"errors"
	"fmt"
)

// NotFoundError signals that no content was authored for the requested page.
// Callers must surface a 404-equivalent rather than synthesize placeholder
// content.
type NotFoundError struct {
	Service  ServiceType
	TownSlug string
	BlogSlug string
	Path     string
}

func (e *NotFoundError) Error() string {
	if e.BlogSlug != "" {
		return fmt.Sprintf("content: no article for slug %q", e.BlogSlug)
	}
	if e.Path != "" {
		return fmt.Sprintf("content: no page for path %q", e.Path)
	}
	return fmt.Sprintf("content: no record for service %q in town %q", e.Service, e.TownSlug)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// MalformedRecordError signals an authoring bug: a registry entry missing a
// required field or violating a registry invariant. Loading and rendering
// fail loudly on it instead of emitting a partially blank page.
type MalformedRecordError struct {
	Page   string
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("content: malformed record %s: field %s: %s", e.Page, e.Field, e.Reason)
	}
	return fmt.Sprintf("content: malformed record %s: %s", e.Page, e.Reason)
}

// IsMalformed reports whether err wraps a MalformedRecordError.
func IsMalformed(err error) bool {
	var mr *MalformedRecordError
	return errors.As(err, &mr)
}
