package idgen

import "sync"

// Category names an id sequence. Each category counts independently.
type Category string

const (
	CategoryResource Category = "resource"
	CategoryHolder   Category = "holder"
)

// Allocator issues strictly increasing ids starting at 1 for each category.
// Issued ids are never handed out again, regardless of what happens to the
// entity that received them.
type Allocator struct {
	mu   sync.Mutex
	last map[Category]int64
}

func NewAllocator() *Allocator {
	return &Allocator{last: make(map[Category]int64)}
}

// Next returns the next id for the category.
func (a *Allocator) Next(c Category) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last[c]++
	return a.last[c]
}

// Last returns the most recently issued id for the category, or 0.
func (a *Allocator) Last(c Category) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last[c]
}
