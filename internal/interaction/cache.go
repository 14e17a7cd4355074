package interaction

import lru "github.com/hashicorp/golang-lru/v2"

// memo is a size-bounded LRU cache shared by the workers. A nil memo never
// stores anything.
type memo[K comparable, V any] struct {
	c *lru.Cache[K, V]
}

// newMemo returns a cache of at most size entries, or nil when size is not
// positive.
func newMemo[K comparable, V any](size int) *memo[K, V] {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[K, V](size)
	if err != nil {
		return nil
	}
	return &memo[K, V]{c: c}
}

func (m *memo[K, V]) Get(k K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	return m.c.Get(k)
}

func (m *memo[K, V]) Put(k K, v V) {
	if m != nil {
		m.c.Add(k, v)
	}
}

func (m *memo[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.c.Len()
}
