package defaultmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/msgkit/pkg/defaultmap"
)

func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("creates and inserts on miss", func(t *testing.T) {
		t.Parallel()
		created := 0
		m := defaultmap.New(func(key string) *[]int {
			created++
			return &[]int{}
		})

		list := m.Fetch("a")
		*list = append(*list, 1)

		require.Equal(t, 1, created)
		assert.Equal(t, []int{1}, *m.Fetch("a"), "second fetch returns the stored value")
		assert.Equal(t, 1, created, "creator runs once per key")
		assert.Equal(t, 1, m.Len())
	})

	t.Run("creator receives the key", func(t *testing.T) {
		t.Parallel()
		m := defaultmap.New(func(key string) string { return key + "!" })
		assert.Equal(t, "hi!", m.Fetch("hi"))
	})

	t.Run("zero value defaults", func(t *testing.T) {
		t.Parallel()
		m := defaultmap.NewZero[string, int]()
		assert.Equal(t, 0, m.Fetch("anything"))
		assert.Equal(t, 1, m.Len())
	})
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	t.Run("get does not create", func(t *testing.T) {
		t.Parallel()
		m := defaultmap.NewZero[string, int]()
		_, ok := m.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("set and delete", func(t *testing.T) {
		t.Parallel()
		m := defaultmap.NewZero[string, int]()
		m.Set("a", 7)

		v, ok := m.Get("a")
		require.True(t, ok)
		assert.Equal(t, 7, v)

		m.Delete("a")
		_, ok = m.Get("a")
		assert.False(t, ok)
	})

	t.Run("keys and raw reflect contents", func(t *testing.T) {
		t.Parallel()
		m := defaultmap.NewWithMap(map[string]int{"a": 1, "b": 2}, func(string) int { return 0 })
		assert.ElementsMatch(t, []string{"a", "b"}, m.Keys())
		assert.Equal(t, map[string]int{"a": 1, "b": 2}, m.Raw())
	})
}

func TestNewWithMap(t *testing.T) {
	t.Parallel()

	t.Run("panics without a creator", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() { defaultmap.NewWithMap[string, int](nil, nil) })
	})

	t.Run("nil backing map is allocated", func(t *testing.T) {
		t.Parallel()
		m := defaultmap.NewWithMap[string, int](nil, func(string) int { return 9 })
		assert.Equal(t, 9, m.Fetch("x"))
	})

	t.Run("existing entries are preserved", func(t *testing.T) {
		t.Parallel()
		m := defaultmap.NewWithMap(map[string]int{"kept": 5}, func(string) int { return 0 })
		assert.Equal(t, 5, m.Fetch("kept"))
	})
}
