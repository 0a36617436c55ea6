package content

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// serviceFile is the YAML document shape for one service category: the
// category tag plus the authored records for each town that has the page.
type serviceFile struct {
	Service ServiceType             `yaml:"service"`
	Records []*ServiceContentRecord `yaml:"records"`
}

type blogFile struct {
	Posts []*BlogPost `yaml:"posts"`
}

func load(files fs.FS) ([]*ServiceContentRecord, []*BlogPost, error) {
	records, err := loadServiceFiles(files)
	if err != nil {
		return nil, nil, err
	}
	posts, err := loadBlogPosts(files)
	if err != nil {
		return nil, nil, err
	}
	return records, posts, nil
}

func loadServiceFiles(files fs.FS) ([]*ServiceContentRecord, error) {
	entries, err := fs.ReadDir(files, "services")
	if err != nil {
		return nil, fmt.Errorf("content: read services dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var records []*ServiceContentRecord
	for _, name := range names {
		data, err := fs.ReadFile(files, path.Join("services", name))
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", name, err)
		}

		var doc serviceFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("content: parse %s: %w", name, err)
		}
		if !doc.Service.Valid() {
			return nil, &MalformedRecordError{
				Page:   name,
				Field:  "service",
				Reason: fmt.Sprintf("unknown service type %q", doc.Service),
			}
		}

		for _, record := range doc.Records {
			record.Service = doc.Service
			records = append(records, record)
		}
	}
	return records, nil
}

func loadBlogPosts(files fs.FS) ([]*BlogPost, error) {
	data, err := fs.ReadFile(files, "blog/posts.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read blog posts: %w", err)
	}

	var doc blogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("content: parse blog posts: %w", err)
	}
	return doc.Posts, nil
}

func validateRecord(record *ServiceContentRecord) error {
	page := record.Path()
	switch {
	case !record.Service.Valid():
		return &MalformedRecordError{Page: page, Field: "service", Reason: "unknown service type"}
	case strings.TrimSpace(record.TownSlug) == "":
		return &MalformedRecordError{Page: page, Field: "town", Reason: "required"}
	case strings.TrimSpace(record.TownName) == "":
		return &MalformedRecordError{Page: page, Field: "townName", Reason: "required"}
	case strings.TrimSpace(record.Hero.Title) == "":
		return &MalformedRecordError{Page: page, Field: "hero.title", Reason: "required"}
	case strings.TrimSpace(record.SEO.Title) == "":
		return &MalformedRecordError{Page: page, Field: "seo.title", Reason: "required"}
	case strings.TrimSpace(record.SEO.CanonicalURL) == "":
		return &MalformedRecordError{Page: page, Field: "seo.canonicalUrl", Reason: "required"}
	case strings.TrimSpace(record.Quote.Source) == "":
		return &MalformedRecordError{Page: page, Field: "quote.source", Reason: "required"}
	}

	for i, pkg := range record.Packages {
		if strings.TrimSpace(pkg.Name) == "" || strings.TrimSpace(pkg.Price) == "" {
			return &MalformedRecordError{
				Page:   page,
				Field:  fmt.Sprintf("packages[%d]", i),
				Reason: "name and price required",
			}
		}
	}
	return nil
}

func validatePost(post *BlogPost) error {
	page := post.Path()
	switch {
	case strings.TrimSpace(post.Slug) == "":
		return &MalformedRecordError{Page: "blog post", Field: "slug", Reason: "required"}
	case strings.TrimSpace(post.Title) == "":
		return &MalformedRecordError{Page: page, Field: "title", Reason: "required"}
	case post.PublishDate.IsZero():
		return &MalformedRecordError{Page: page, Field: "publishDate", Reason: "required"}
	}
	return nil
}
