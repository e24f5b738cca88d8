package holder

import (
	"context"
	"sync"
)

type Repository interface {
	Create(ctx context.Context, h *Holder) error
	GetByID(ctx context.Context, id int64) (*Holder, error)
	List(ctx context.Context, filter Filter) ([]*Holder, int, error)
	// Modify applies fn under the write lock; the change is dropped if fn fails.
	Modify(ctx context.Context, id int64, fn func(h *Holder) error) (*Holder, error)
	// Delete removes the holder and returns its last state.
	Delete(ctx context.Context, id int64) (*Holder, error)
}

type memoryRepository struct {
	mu    sync.RWMutex
	items map[int64]*Holder
	order []int64
}

func NewMemoryRepository() Repository {
	return &memoryRepository{items: make(map[int64]*Holder)}
}

func (r *memoryRepository) Create(_ context.Context, h *Holder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[h.ID] = h.clone()
	r.order = append(r.order, h.ID)
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*Holder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return h.clone(), nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Holder, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Holder
	for _, id := range r.order {
		h := r.items[id]
		if filter.ResourceID != 0 && (h.Allocation == nil || h.Allocation.ResourceID != filter.ResourceID) {
			continue
		}
		matched = append(matched, h.clone())
	}

	total := len(matched)
	if filter.PageSize < 1 {
		return matched, total, nil
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	if page-1 > total/filter.PageSize {
		return nil, total, nil
	}
	start := (page - 1) * filter.PageSize
	if start >= total {
		return nil, total, nil
	}
	end := min(start+filter.PageSize, total)
	return matched[start:end], total, nil
}

func (r *memoryRepository) Modify(_ context.Context, id int64, fn func(h *Holder) error) (*Holder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	draft := h.clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	r.items[id] = draft
	return draft.clone(), nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) (*Holder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return h, nil
}
