package content

import "time"

// ServiceType identifies one of the service categories the business offers.
// Each category has its own template component; the value doubles as the
// slug segment used in page paths.
type ServiceType string

const (
	ServiceLawnCare      ServiceType = "lawn-care"
	ServiceSnowRemoval   ServiceType = "snow-removal"
	ServiceBushTrimming  ServiceType = "bush-trimming"
	ServiceFallCleanup   ServiceType = "fall-cleanup"
	ServiceFertilization ServiceType = "fertilization-weed-control"
)

// ServiceTypes returns every known service category in a stable order.
func ServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceLawnCare,
		ServiceSnowRemoval,
		ServiceBushTrimming,
		ServiceFallCleanup,
		ServiceFertilization,
	}
}

// Valid reports whether the value is a known service category.
func (s ServiceType) Valid() bool {
	switch s {
	case ServiceLawnCare, ServiceSnowRemoval, ServiceBushTrimming,
		ServiceFallCleanup, ServiceFertilization:
		return true
	default:
		return false
	}
}

// Hero holds the above-the-fold copy for a landing page.
type Hero struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Badge    string `yaml:"badge,omitempty" json:"badge,omitempty"`
	CTALabel string `yaml:"ctaLabel,omitempty" json:"ctaLabel,omitempty"`
}

// Stat is one entry in the stat strip under the hero. Values are authored
// strings ("500+", "24/7") rather than numbers so copy stays verbatim.
type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Package describes one pricing tier. Not every service category has tiered
// pricing; records without packages get a generic quote call-to-action.
type Package struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Price       string   `yaml:"price" json:"price"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Features    []string `yaml:"features,omitempty" json:"features,omitempty"`
	Popular     bool     `yaml:"popular,omitempty" json:"popular,omitempty"`
}

// SEO carries the page metadata and any authored structured-data fragments.
// Fragments are merged with a synthesized LocalBusiness block at render time.
type SEO struct {
	Title          string           `yaml:"title" json:"title"`
	Description    string           `yaml:"description" json:"description"`
	Keywords       string           `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	CanonicalURL   string           `yaml:"canonicalUrl" json:"canonicalUrl"`
	StructuredData []map[string]any `yaml:"structuredData,omitempty" json:"structuredData,omitempty"`
}

// QuoteConfig pre-configures the embedded lead-capture form.
type QuoteConfig struct {
	Title        string `yaml:"title" json:"title"`
	Subtitle     string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	LocationName string `yaml:"locationName" json:"locationName"`
	Source       string `yaml:"source" json:"source"`
}

// CTA is the closing call-to-action block.
type CTA struct {
	Title          string `yaml:"title" json:"title"`
	Body           string `yaml:"body,omitempty" json:"body,omitempty"`
	PrimaryLabel   string `yaml:"primaryLabel" json:"primaryLabel"`
	SecondaryLabel string `yaml:"secondaryLabel,omitempty" json:"secondaryLabel,omitempty"`
}

// FAQItem is one authored question/answer pair.
type FAQItem struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// ServiceContentRecord is the authored content for one (service, town)
// landing page. Records are built once at load time and treated as
// read-only afterwards.
type ServiceContentRecord struct {
	Service    ServiceType `yaml:"-" json:"service"`
	TownSlug   string      `yaml:"town" json:"townSlug"`
	TownName   string      `yaml:"townName" json:"townDisplayName"`
	Hero       Hero        `yaml:"hero" json:"hero"`
	Highlights []string    `yaml:"highlights,omitempty" json:"overviewHighlights,omitempty"`
	Stats      []Stat      `yaml:"stats,omitempty" json:"serviceStats,omitempty"`
	Packages   []Package   `yaml:"packages,omitempty" json:"packages,omitempty"`
	Areas      []string    `yaml:"areas,omitempty" json:"areas,omitempty"`
	FAQ        []FAQItem   `yaml:"faq,omitempty" json:"faq,omitempty"`
	SEO        SEO         `yaml:"seo" json:"seo"`
	Quote      QuoteConfig `yaml:"quote" json:"quoteConfig"`
	CTA        CTA         `yaml:"cta" json:"cta"`
}

// Path returns the URL path the record is served under.
func (r *ServiceContentRecord) Path() string {
	return "/" + string(r.Service) + "-" + r.TownSlug + "-ct"
}

// HasPackages reports whether the record carries tiered pricing. Templates
// use it to choose between the tier grid and the generic quote block.
func (r *ServiceContentRecord) HasPackages() bool {
	return len(r.Packages) > 0
}

// BlogSection is one heading plus its body content within an article.
type BlogSection struct {
	Heading    string   `yaml:"heading,omitempty" json:"heading,omitempty"`
	Paragraphs []string `yaml:"paragraphs,omitempty" json:"paragraphs,omitempty"`
	Bullets    []string `yaml:"bullets,omitempty" json:"bullets,omitempty"`
}

// BlogPost holds article metadata plus section content. Slug is the join key
// into the /blog/{slug} path and the related-articles table.
type BlogPost struct {
	Slug        string        `yaml:"slug" json:"slug"`
	Title       string        `yaml:"title" json:"title"`
	Excerpt     string        `yaml:"excerpt,omitempty" json:"excerpt,omitempty"`
	PublishDate time.Time     `yaml:"publishDate" json:"publishDate"`
	ReadingTime string        `yaml:"readingTime,omitempty" json:"readingTime,omitempty"`
	Overline    string        `yaml:"overline,omitempty" json:"heroOverline,omitempty"`
	Sections    []BlogSection `yaml:"sections,omitempty" json:"sections,omitempty"`
}

// Path returns the URL path the article is served under.
func (p *BlogPost) Path() string {
	return "/blog/" + p.Slug
}
