// Package crosslink produces the "related services in this town" and
// "related articles" link blocks from static adjacency data. Lookups are
// pure and never fail: unknown keys yield empty results so a page simply
// renders without the block.
package crosslink

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/gdlandscaping/sitegen/pkg/content"
)

// ServiceLink is one entry in a town's service adjacency list.
type ServiceLink struct {
	Name string              `yaml:"name" json:"name"`
	URL  string              `yaml:"url" json:"url"`
	Icon string              `yaml:"icon,omitempty" json:"icon,omitempty"`
	Type content.ServiceType `yaml:"type" json:"type"`
}

// ArticleLink is one curated article reference for a service category.
type ArticleLink struct {
	Title       string `yaml:"title" json:"title"`
	URL         string `yaml:"url" json:"url"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type adjacencyFile struct {
	Towns map[string][]ServiceLink `yaml:"towns"`
}

type articlesFile struct {
	Articles map[content.ServiceType][]ArticleLink `yaml:"articles"`
}

// Engine answers related-service and related-article lookups from the
// authored adjacency tables. Construct once; safe for concurrent use.
type Engine struct {
	towns    map[string][]ServiceLink
	articles map[content.ServiceType][]ArticleLink
}

// Option customises engine construction.
type Option func(*config)

type config struct {
	dataFS fs.FS
}

// WithDataFS loads adjacency tables from an alternate fs.FS instead of the
// embedded bundle.
func WithDataFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.dataFS = files
		}
	}
}

// New builds an Engine from the embedded adjacency tables.
func New(options ...Option) (*Engine, error) {
	cfg := config{dataFS: DataFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	towns, err := loadAdjacency(cfg.dataFS)
	if err != nil {
		return nil, err
	}
	articles, err := loadArticles(cfg.dataFS)
	if err != nil {
		return nil, err
	}

	return &Engine{towns: towns, articles: articles}, nil
}

// RelatedServices returns the other services offered in a town, in authored
// order, with entries matching the current service filtered out. Unknown
// towns return nil rather than an error.
func (e *Engine) RelatedServices(townSlug string, current content.ServiceType) []ServiceLink {
	links, ok := e.towns[townSlug]
	if !ok {
		return nil
	}

	out := make([]ServiceLink, 0, len(links))
	for _, link := range links {
		if link.Type == current {
			continue
		}
		out = append(out, link)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// RelatedArticles returns up to three curated articles for a service
// category, or nil for unmapped categories.
func (e *Engine) RelatedArticles(current content.ServiceType) []ArticleLink {
	links := e.articles[current]
	if len(links) == 0 {
		return nil
	}
	if len(links) > 3 {
		links = links[:3]
	}
	out := make([]ArticleLink, len(links))
	copy(out, links)
	return out
}

// Towns returns the slugs present in the adjacency table. The registry and
// this table are maintained together; build tooling cross-checks them.
func (e *Engine) Towns() []string {
	out := make([]string, 0, len(e.towns))
	for town := range e.towns {
		out = append(out, town)
	}
	return out
}

func loadAdjacency(files fs.FS) (map[string][]ServiceLink, error) {
	data, err := fs.ReadFile(files, "towns.yaml")
	if err != nil {
		return nil, fmt.Errorf("crosslink: read towns.yaml: %w", err)
	}
	var doc adjacencyFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("crosslink: parse towns.yaml: %w", err)
	}
	return doc.Towns, nil
}

func loadArticles(files fs.FS) (map[content.ServiceType][]ArticleLink, error) {
	data, err := fs.ReadFile(files, "articles.yaml")
	if err != nil {
		return nil, fmt.Errorf("crosslink: read articles.yaml: %w", err)
	}
	var doc articlesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("crosslink: parse articles.yaml: %w", err)
	}
	return doc.Articles, nil
}
