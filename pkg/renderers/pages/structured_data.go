package pages

import (
	"encoding/json"
	"fmt"

	"github.com/gdlandscaping/sitegen/pkg/content"
)

// structuredData merges the record's authored schema.org fragments with a
// synthesized LocalBusiness block derived from the town name and the global
// business identity. Every service page emits exactly one JSON-LD script.
func structuredData(record *content.ServiceContentRecord, business Business) (string, error) {
	localBusiness := map[string]any{
		"@context":  "https://schema.org",
		"@type":     "LocalBusiness",
		"name":      business.Name,
		"telephone": business.Phone,
		"url":       record.SEO.CanonicalURL,
		"areaServed": map[string]any{
			"@type": "City",
			"name":  record.TownName,
		},
	}

	fragments := make([]map[string]any, 0, len(record.SEO.StructuredData)+1)
	fragments = append(fragments, localBusiness)
	fragments = append(fragments, record.SEO.StructuredData...)

	var payload any = fragments
	if len(fragments) == 1 {
		payload = fragments[0]
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("pages renderer: marshal structured data for %s: %w", record.Path(), err)
	}
	return string(out), nil
}
