package idgen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIsPerCategory(t *testing.T) {
	a := NewAllocator()

	assert.Equal(t, int64(1), a.Next(CategoryResource))
	assert.Equal(t, int64(2), a.Next(CategoryResource))
	assert.Equal(t, int64(1), a.Next(CategoryHolder))
	assert.Equal(t, int64(2), a.Last(CategoryResource))
	assert.Equal(t, int64(0), a.Last(Category("other")))
}

func TestNextConcurrentStrictlyIncreasingAndUnique(t *testing.T) {
	a := NewAllocator()

	const workers, perWorker = 8, 200
	results := make([][]int64, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results[w] = append(results[w], a.Next(CategoryHolder))
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, ids := range results {
		for i, id := range ids {
			require.False(t, seen[id], "id %d issued twice", id)
			seen[id] = true
			if i > 0 {
				assert.Greater(t, id, ids[i-1])
			}
		}
	}
	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, int64(workers*perWorker), a.Last(CategoryHolder))
}
