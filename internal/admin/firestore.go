package admin

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/gdlandscaping/sitegen/internal/logger"
)

// FirestoreRepository stores inquiries in a Firestore collection.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
	log        logger.Logger
}

// FirestoreOption customizes the repository.
type FirestoreOption func(*firestoreConfig)

type firestoreConfig struct {
	credentialsFile string
	log             logger.Logger
}

// WithCredentialsFile points the client at a service account key instead of
// application default credentials.
func WithCredentialsFile(path string) FirestoreOption {
	return func(c *firestoreConfig) {
		c.credentialsFile = path
	}
}

// WithFirestoreLogger injects a logger.
func WithFirestoreLogger(log logger.Logger) FirestoreOption {
	return func(c *firestoreConfig) {
		c.log = log
	}
}

// NewFirestoreRepository connects to the project's inquiry collection.
func NewFirestoreRepository(ctx context.Context, projectID, collection string, options ...FirestoreOption) (*FirestoreRepository, error) {
	cfg := firestoreConfig{log: logger.NewNop()}
	for _, opt := range options {
		opt(&cfg)
	}

	var clientOptions []option.ClientOption
	if cfg.credentialsFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(cfg.credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("admin: creating firestore client: %w", err)
	}
	return &FirestoreRepository{client: client, collection: collection, log: cfg.log}, nil
}

// Close closes the underlying client.
func (r *FirestoreRepository) Close() error {
	return r.client.Close()
}

func (r *FirestoreRepository) Create(ctx context.Context, inquiry Inquiry) error {
	doc := r.client.Collection(r.collection).Doc(inquiry.ID)
	if _, err := doc.Set(ctx, inquiryToMap(inquiry)); err != nil {
		return fmt.Errorf("admin: writing inquiry %s: %w", inquiry.ID, err)
	}
	return nil
}

func (r *FirestoreRepository) Get(ctx context.Context, id string) (Inquiry, error) {
	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return Inquiry{}, &NotFoundError{ID: id}
		}
		return Inquiry{}, fmt.Errorf("admin: reading inquiry %s: %w", id, err)
	}
	return mapToInquiry(snap.Ref.ID, snap.Data()), nil
}

func (r *FirestoreRepository) List(ctx context.Context, filter ListFilter) ([]Inquiry, error) {
	query := r.client.Collection(r.collection).Query
	if filter.Status != "" {
		query = query.Where("status", "==", string(filter.Status))
	}
	if filter.Source != "" {
		query = query.Where("source", "==", filter.Source)
	}
	query = query.OrderBy("submitted_at", firestore.Desc)

	var inquiries []Inquiry
	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("admin: iterating inquiries: %w", err)
		}
		inquiries = append(inquiries, mapToInquiry(doc.Ref.ID, doc.Data()))
	}
	return inquiries, nil
}

func (r *FirestoreRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	doc := r.client.Collection(r.collection).Doc(id)
	_, err := doc.Update(ctx, []firestore.Update{
		{Path: "status", Value: string(status)},
		{Path: "updated_at", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("admin: updating inquiry %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(r.collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("admin: deleting inquiry %s: %w", id, err)
	}
	return nil
}

// Subscribe streams the full inquiry list on every collection change until
// ctx ends.
func (r *FirestoreRepository) Subscribe(ctx context.Context) <-chan []Inquiry {
	updates := make(chan []Inquiry, 1)

	go func() {
		defer close(updates)

		snapshots := r.client.Collection(r.collection).Query.
			OrderBy("submitted_at", firestore.Desc).
			Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil {
					r.log.Error("inquiry snapshot stream ended", logger.Error(err))
				}
				return
			}

			var inquiries []Inquiry
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					r.log.Error("reading inquiry snapshot", logger.Error(err))
					break
				}
				inquiries = append(inquiries, mapToInquiry(doc.Ref.ID, doc.Data()))
			}

			select {
			case updates <- inquiries:
			case <-ctx.Done():
				return
			}
		}
	}()
	return updates
}

func inquiryToMap(inquiry Inquiry) map[string]interface{} {
	status := inquiry.Status
	if status == "" {
		status = StatusNew
	}
	return map[string]interface{}{
		"source":             inquiry.SourcePageID,
		"customer_name":      inquiry.CustomerName,
		"customer_email":     inquiry.CustomerEmail,
		"customer_phone":     inquiry.CustomerPhone,
		"address":            inquiry.Address,
		"services_requested": inquiry.ServicesRequested,
		"budget":             inquiry.Budget,
		"message":            inquiry.Message,
		"status":             string(status),
		"submitted_at":       inquiry.SubmittedAt,
		"updated_at":         firestore.ServerTimestamp,
	}
}

func mapToInquiry(id string, m map[string]interface{}) Inquiry {
	inquiry := Inquiry{ID: id}

	if v, ok := m["source"].(string); ok {
		inquiry.SourcePageID = v
	}
	if v, ok := m["customer_name"].(string); ok {
		inquiry.CustomerName = v
	}
	if v, ok := m["customer_email"].(string); ok {
		inquiry.CustomerEmail = v
	}
	if v, ok := m["customer_phone"].(string); ok {
		inquiry.CustomerPhone = v
	}
	if v, ok := m["address"].(string); ok {
		inquiry.Address = v
	}
	if v, ok := m["services_requested"].(string); ok {
		inquiry.ServicesRequested = v
	}
	if v, ok := m["budget"].(string); ok {
		inquiry.Budget = v
	}
	if v, ok := m["message"].(string); ok {
		inquiry.Message = v
	}
	if v, ok := m["status"].(string); ok {
		inquiry.Status = Status(v)
	}
	if v, ok := m["submitted_at"].(time.Time); ok {
		inquiry.SubmittedAt = v
	}
	if v, ok := m["updated_at"].(time.Time); ok {
		inquiry.UpdatedAt = v
	}
	return inquiry
}
