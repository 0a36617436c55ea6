package pages

import (
	"sort"
	"strings"
)

// townTitle turns a town slug into display casing ("rocky-hill" becomes
// "Rocky Hill"). Authored records carry their own display names; this is
// only for directory listings built from slugs.
func townTitle(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
