// Package defaultmap provides a map that fabricates and inserts a
// default value for any key fetched without an entry.
//
// The zero-allocation path is an ordinary map access; only a Fetch
// miss invokes the creator. The map is not safe for concurrent use;
// guard it externally when shared between goroutines.
//
//	counters := defaultmap.New(func(string) *Counter { return &Counter{} })
//	counters.Fetch("requests").Incr()
package defaultmap

// Map wraps a plain map and auto-populates missing entries on Fetch
// using a creator function.
type Map[K comparable, V any] struct {
	items   map[K]V
	creator func(K) V
}

// New creates a map that fabricates defaults with creator.
func New[K comparable, V any](creator func(K) V) *Map[K, V] {
	return NewWithMap(make(map[K]V), creator)
}

// NewWithMap creates a default map backed by the supplied map, which
// may already contain entries.
func NewWithMap[K comparable, V any](items map[K]V, creator func(K) V) *Map[K, V] {
	if creator == nil {
		panic("defaultmap: creator is not provided")
	}
	if items == nil {
		items = make(map[K]V)
	}
	return &Map[K, V]{items: items, creator: creator}
}

// NewZero creates a map whose defaults are the zero value of V.
func NewZero[K comparable, V any]() *Map[K, V] {
	return New(func(K) V {
		var zero V
		return zero
	})
}

// Fetch returns the value for key, creating and inserting a default
// first when no entry exists.
func (m *Map[K, V]) Fetch(key K) V {
	if v, ok := m.items[key]; ok {
		return v
	}
	v := m.creator(key)
	m.items[key] = v
	return v
}

// Get returns the value for key without creating a default.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Set stores a value for key.
func (m *Map[K, V]) Set(key K, value V) {
	m.items[key] = value
}

// Delete removes the entry for key.
func (m *Map[K, V]) Delete(key K) {
	delete(m.items, key)
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.items)
}

// Keys returns the keys in unspecified order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	return keys
}

// Raw exposes the backing map. Mutations through it are visible to the
// Map and vice versa.
func (m *Map[K, V]) Raw() map[K]V {
	return m.items
}
