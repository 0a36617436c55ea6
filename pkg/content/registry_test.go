package content_test

import (
	"testing"
	"testing/fstest"

	"github.com/gdlandscaping/sitegen/pkg/content"
	"github.com/google/go-cmp/cmp"
)

const minimalService = `service: lawn-care
records:
  - town: berlin
    townName: Berlin
    hero:
      title: Lawn Care in Berlin
    seo:
      title: Lawn Care Berlin CT
      description: d
      canonicalUrl: https://www.gdlandscapingllc.com/lawn-care-berlin-ct
    quote:
      title: Quote
      locationName: Berlin
      source: lawn-care-berlin-ct
`

const minimalBlog = `posts:
  - slug: first-post
    title: First Post
    publishDate: 2024-05-01
  - slug: second-post
    title: Second Post
    publishDate: 2024-06-01
`

func fixtureFS(service, blog string) fstest.MapFS {
	return fstest.MapFS{
		"services/lawn-care.yaml": &fstest.MapFile{Data: []byte(service)},
		"blog/posts.yaml":         &fstest.MapFile{Data: []byte(blog)},
	}
}

func TestNewLoadsEmbeddedContent(t *testing.T) {
	registry, err := content.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := len(registry.Records()); got != 45 {
		t.Errorf("len(Records()) = %d, want 45", got)
	}
	if got := len(registry.BlogPosts()); got != 8 {
		t.Errorf("len(BlogPosts()) = %d, want 8", got)
	}
	wantTowns := []string{
		"berlin", "cromwell", "farmington", "kensington", "middletown",
		"new-britain", "newington", "rocky-hill", "southington", "wethersfield",
	}
	if diff := cmp.Diff(wantTowns, registry.Towns()); diff != "" {
		t.Errorf("Towns() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordLookup(t *testing.T) {
	registry, err := content.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	record, err := registry.Record(content.ServiceFallCleanup, "berlin")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if record.TownName != "Berlin" {
		t.Errorf("TownName = %q", record.TownName)
	}
	if record.Path() != "/fall-cleanup-berlin-ct" {
		t.Errorf("Path() = %q", record.Path())
	}
	if record.Quote.Source != "fall-cleanup-berlin-ct" {
		t.Errorf("Quote.Source = %q", record.Quote.Source)
	}
}

func TestExcludedCombinationsAbsent(t *testing.T) {
	registry, err := content.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	excluded := []struct {
		service content.ServiceType
		town    string
	}{
		{content.ServiceFertilization, "cromwell"},
		{content.ServiceFertilization, "kensington"},
		{content.ServiceSnowRemoval, "kensington"},
		{content.ServiceSnowRemoval, "farmington"},
		{content.ServiceBushTrimming, "middletown"},
	}
	for _, pair := range excluded {
		if registry.HasRecord(pair.service, pair.town) {
			t.Errorf("unexpected record for %s/%s", pair.service, pair.town)
		}
		_, err := registry.Record(pair.service, pair.town)
		if !content.IsNotFound(err) {
			t.Errorf("Record(%s, %s) error = %v, want not-found", pair.service, pair.town, err)
		}
	}
}

func TestPackagesOnlyWhereTiered(t *testing.T) {
	registry, err := content.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tiered := map[content.ServiceType]bool{
		content.ServiceLawnCare:      true,
		content.ServiceSnowRemoval:   true,
		content.ServiceFertilization: true,
	}
	for _, record := range registry.Records() {
		if tiered[record.Service] != record.HasPackages() {
			t.Errorf("%s: HasPackages() = %v, want %v", record.Path(), record.HasPackages(), tiered[record.Service])
		}
	}
}

func TestBlogPostsNewestFirst(t *testing.T) {
	registry, err := content.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	posts := registry.BlogPosts()
	for i := 1; i < len(posts); i++ {
		if posts[i].PublishDate.After(posts[i-1].PublishDate) {
			t.Errorf("posts out of order: %s (%s) after %s (%s)",
				posts[i].Slug, posts[i].PublishDate,
				posts[i-1].Slug, posts[i-1].PublishDate)
		}
	}
}

func TestBlogPostLookup(t *testing.T) {
	registry, err := content.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	post, err := registry.BlogPost("fall-cleanup-checklist-connecticut")
	if err != nil {
		t.Fatalf("BlogPost() error = %v", err)
	}
	if post.Path() != "/blog/fall-cleanup-checklist-connecticut" {
		t.Errorf("Path() = %q", post.Path())
	}

	_, err = registry.BlogPost("missing")
	if !content.IsNotFound(err) {
		t.Errorf("BlogPost(missing) error = %v, want not-found", err)
	}
}

func TestNewWithFixtureFS(t *testing.T) {
	registry, err := content.New(content.WithDataFS(fixtureFS(minimalService, minimalBlog)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := len(registry.Records()); got != 1 {
		t.Fatalf("len(Records()) = %d, want 1", got)
	}
	posts := registry.BlogPosts()
	if len(posts) != 2 || posts[0].Slug != "second-post" {
		t.Errorf("BlogPosts() = %v, want second-post first", posts)
	}
}

func TestNewRejectsMissingRequiredField(t *testing.T) {
	broken := `service: lawn-care
records:
  - town: berlin
    townName: Berlin
    hero:
      title: ""
    seo:
      title: t
      canonicalUrl: https://example.com/x
    quote:
      source: lawn-care-berlin-ct
`
	_, err := content.New(content.WithDataFS(fixtureFS(broken, minimalBlog)))
	if !content.IsMalformed(err) {
		t.Fatalf("error = %v, want malformed record", err)
	}
}

func TestNewRejectsDuplicateCanonical(t *testing.T) {
	dup := minimalService + `  - town: cromwell
    townName: Cromwell
    hero:
      title: Lawn Care in Cromwell
    seo:
      title: Lawn Care Cromwell CT
      canonicalUrl: https://www.gdlandscapingllc.com/lawn-care-berlin-ct
    quote:
      source: lawn-care-cromwell-ct
`
	_, err := content.New(content.WithDataFS(fixtureFS(dup, minimalBlog)))
	if !content.IsMalformed(err) {
		t.Fatalf("error = %v, want malformed record", err)
	}
}

func TestNewRejectsUnknownService(t *testing.T) {
	_, err := content.New(content.WithDataFS(fixtureFS("service: tree-surgery\nrecords: []\n", minimalBlog)))
	if !content.IsMalformed(err) {
		t.Fatalf("error = %v, want malformed record", err)
	}
}

func TestEveryRecordCanonicalMatchesPath(t *testing.T) {
	registry, err := content.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	const base = "https://www.gdlandscapingllc.com"
	for _, record := range registry.Records() {
		if record.SEO.CanonicalURL != base+record.Path() {
			t.Errorf("%s: canonical %q does not match path", record.Path(), record.SEO.CanonicalURL)
		}
	}
}
