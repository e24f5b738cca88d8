package resource

import (
	"context"
	"strings"
	"sync"
)

type Repository interface {
	Create(ctx context.Context, res *Resource) error
	GetByID(ctx context.Context, id int64) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, int, error)

	// Modify runs fn against the stored resource while holding the write lock.
	// Changes are only kept if fn returns nil. The returned value is a copy of
	// the stored resource after the change.
	Modify(ctx context.Context, id int64, fn func(res *Resource) error) (*Resource, error)

	// Delete removes the resource if guard (when non-nil) accepts it.
	Delete(ctx context.Context, id int64, guard func(res *Resource) error) error
}

// memoryRepository keeps resources in a map keyed by id. order remembers
// insertion order so listings are stable across calls.
type memoryRepository struct {
	mu    sync.RWMutex
	items map[int64]*Resource
	order []int64
}

func NewMemoryRepository() Repository {
	return &memoryRepository{items: make(map[int64]*Resource)}
}

func (r *memoryRepository) Create(_ context.Context, res *Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *res
	r.items[res.ID] = &stored
	r.order = append(r.order, res.ID)
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *res
	return &out, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Resource, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Resource
	for _, id := range r.order {
		res := r.items[id]
		if filter.Kind != "" && !strings.EqualFold(res.Kind, filter.Kind) {
			continue
		}
		if filter.Model != "" && res.Model != filter.Model {
			continue
		}
		out := *res
		matched = append(matched, &out)
	}

	total := len(matched)
	return paginate(matched, filter.Page, filter.PageSize), total, nil
}

func (r *memoryRepository) Modify(_ context.Context, id int64, fn func(res *Resource) error) (*Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	// Work on a copy so a rejected change leaves the stored value untouched.
	draft := *res
	if err := fn(&draft); err != nil {
		return nil, err
	}
	*res = draft

	out := draft
	return &out, nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64, guard func(res *Resource) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	if guard != nil {
		if err := guard(res); err != nil {
			return err
		}
	}

	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// paginate returns the requested page. A page size below 1 returns everything.
func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize < 1 {
		return items
	}
	if page < 1 {
		page = 1
	}
	// Checked before multiplying so huge page numbers cannot overflow.
	if page-1 > len(items)/pageSize {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
