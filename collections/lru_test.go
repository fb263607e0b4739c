package collections

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLruCache(t *testing.T) {
	require := require.New(t)

	_, err := NewLruCache[string, int](0)
	require.Error(err)

	cache, err := NewLruCache[string, int](2)
	require.NoError(err)

	cache.Put("a", 1)
	cache.Put("b", 2)
	value, exists := cache.Get("a")
	require.True(exists)
	require.Equal(1, value)

	// "b" is now the least recently used entry.
	cache.Put("c", 3)
	require.False(cache.Exists("b"))
	require.True(cache.Exists("a"))
	require.ElementsMatch([]string{"a", "c"}, cache.Keys())

	cache.Delete("a")
	_, exists = cache.Get("a")
	require.False(exists)

	cache.Purge()
	require.Empty(cache.Keys())
}
