package content

import (
	"fmt"
	"io/fs"
	"sort"
)

type recordKey struct {
	service ServiceType
	town    string
}

// Registry holds every authored ServiceContentRecord and BlogPost, keyed for
// O(1) lookup. It is built once and read-only afterwards; the authored set is
// intentionally not a full service x town cross product.
type Registry struct {
	records   map[recordKey]*ServiceContentRecord
	order     []recordKey
	posts     map[string]*BlogPost
	postOrder []string
}

// Option customises registry construction.
type Option func(*config)

type config struct {
	dataFS fs.FS
}

// WithDataFS loads authored content from an alternate fs.FS instead of the
// embedded bundle. The tree layout must match data/: services/*.yaml plus
// blog/posts.yaml.
func WithDataFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.dataFS = files
		}
	}
}

// New builds a Registry from the embedded content bundle (or an fs.FS
// supplied via options), validating every record. Any malformed record fails
// construction with a MalformedRecordError.
func New(options ...Option) (*Registry, error) {
	cfg := config{dataFS: DataFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	records, posts, err := load(cfg.dataFS)
	if err != nil {
		return nil, err
	}

	reg := &Registry{
		records: make(map[recordKey]*ServiceContentRecord, len(records)),
		posts:   make(map[string]*BlogPost, len(posts)),
	}

	canonicals := make(map[string]string, len(records))
	for _, record := range records {
		if err := validateRecord(record); err != nil {
			return nil, err
		}
		if prev, dup := canonicals[record.SEO.CanonicalURL]; dup {
			return nil, &MalformedRecordError{
				Page:   record.Path(),
				Field:  "seo.canonicalUrl",
				Reason: fmt.Sprintf("duplicates canonical URL of %s", prev),
			}
		}
		canonicals[record.SEO.CanonicalURL] = record.Path()

		key := recordKey{service: record.Service, town: record.TownSlug}
		if _, exists := reg.records[key]; exists {
			return nil, &MalformedRecordError{
				Page:   record.Path(),
				Reason: "duplicate (service, town) record",
			}
		}
		reg.records[key] = record
		reg.order = append(reg.order, key)
	}

	for _, post := range posts {
		if err := validatePost(post); err != nil {
			return nil, err
		}
		if _, exists := reg.posts[post.Slug]; exists {
			return nil, &MalformedRecordError{
				Page:   post.Path(),
				Reason: "duplicate blog slug",
			}
		}
		reg.posts[post.Slug] = post
		reg.postOrder = append(reg.postOrder, post.Slug)
	}

	return reg, nil
}

// Record returns the authored record for a (service, town) pair or a
// NotFoundError when the combination has no page.
func (r *Registry) Record(service ServiceType, townSlug string) (*ServiceContentRecord, error) {
	record, ok := r.records[recordKey{service: service, town: townSlug}]
	if !ok {
		return nil, &NotFoundError{Service: service, TownSlug: townSlug}
	}
	return record, nil
}

// HasRecord reports whether a (service, town) page was authored.
func (r *Registry) HasRecord(service ServiceType, townSlug string) bool {
	_, ok := r.records[recordKey{service: service, town: townSlug}]
	return ok
}

// BlogPost returns the article for a slug or a NotFoundError.
func (r *Registry) BlogPost(slug string) (*BlogPost, error) {
	post, ok := r.posts[slug]
	if !ok {
		return nil, &NotFoundError{BlogSlug: slug}
	}
	return post, nil
}

// Records returns every service record in authored order.
func (r *Registry) Records() []*ServiceContentRecord {
	out := make([]*ServiceContentRecord, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.records[key])
	}
	return out
}

// BlogPosts returns every article, newest first; ties keep authored order.
func (r *Registry) BlogPosts() []*BlogPost {
	out := make([]*BlogPost, 0, len(r.postOrder))
	for _, slug := range r.postOrder {
		out = append(out, r.posts[slug])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishDate.After(out[j].PublishDate)
	})
	return out
}

// Towns returns the distinct town slugs with at least one authored record,
// sorted alphabetically.
func (r *Registry) Towns() []string {
	seen := make(map[string]struct{})
	for key := range r.records {
		seen[key.town] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for town := range seen {
		out = append(out, town)
	}
	sort.Strings(out)
	return out
}
