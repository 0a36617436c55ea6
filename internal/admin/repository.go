package admin

import (
	"context"
	"sort"
	"sync"
)

// ListFilter narrows a List call. Zero value lists everything.
type ListFilter struct {
	Status Status
	Source string
}

// Repository stores inquiries. Implementations must be safe for concurrent
// use.
type Repository interface {
	Create(ctx context.Context, inquiry Inquiry) error
	Get(ctx context.Context, id string) (Inquiry, error)
	List(ctx context.Context, filter ListFilter) ([]Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

// MemoryRepository is the in-process Repository used for local development
// and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]Inquiry
	watchers []chan []Inquiry
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]Inquiry{}}
}

func (r *MemoryRepository) Create(_ context.Context, inquiry Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inquiry.UpdatedAt.IsZero() {
		inquiry.UpdatedAt = inquiry.SubmittedAt
	}
	r.byID[inquiry.ID] = inquiry
	r.notifyLocked()
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inquiry, ok := r.byID[id]
	if !ok {
		return Inquiry{}, &NotFoundError{ID: id}
	}
	return inquiry, nil
}

func (r *MemoryRepository) List(_ context.Context, filter ListFilter) ([]Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(filter), nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inquiry, ok := r.byID[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	inquiry.Status = status
	r.byID[id] = inquiry
	r.notifyLocked()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(r.byID, id)
	r.notifyLocked()
	return nil
}

// Subscribe streams the full inquiry list on every change until ctx ends.
// The current list is delivered immediately.
func (r *MemoryRepository) Subscribe(ctx context.Context) <-chan []Inquiry {
	updates := make(chan []Inquiry, 1)

	r.mu.Lock()
	r.watchers = append(r.watchers, updates)
	updates <- r.listLocked(ListFilter{})
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		for i, w := range r.watchers {
			if w == updates {
				r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
				break
			}
		}
		r.mu.Unlock()
		close(updates)
	}()
	return updates
}

func (r *MemoryRepository) listLocked(filter ListFilter) []Inquiry {
	out := make([]Inquiry, 0, len(r.byID))
	for _, inquiry := range r.byID {
		if filter.Status != "" && inquiry.Status != filter.Status {
			continue
		}
		if filter.Source != "" && inquiry.SourcePageID != filter.Source {
			continue
		}
		out = append(out, inquiry)
	}
	// Newest first, stable on id for equal timestamps.
	sort.Slice(out, func(i, j int) bool {
		if out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}

func (r *MemoryRepository) notifyLocked() {
	snapshot := r.listLocked(ListFilter{})
	for _, w := range r.watchers {
		// Drop an unconsumed snapshot so slow watchers always see the
		// latest state.
		select {
		case <-w:
		default:
		}
		select {
		case w <- snapshot:
		default:
		}
	}
}
