package collections

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// LruCache is a fixed-size least-recently-used map. The preimage store keeps
// recently looked up preimages in one, keyed by the database key, so that
// repeated requests for the same digest skip the badger transaction. Only this
// file knows the backing library.
type LruCache[K comparable, V any] struct {
	entries *lru.Cache[K, V]
}

// NewLruCache fails when maxSize is not positive.
func NewLruCache[K comparable, V any](maxSize int) (*LruCache[K, V], error) {
	entries, err := lru.New[K, V](maxSize)
	if err != nil {
		return nil, errors.Wrapf(err, "NewLruCache: size %d", maxSize)
	}
	return &LruCache[K, V]{entries}, nil
}

func (cache *LruCache[K, V]) Put(key K, value V) {
	cache.entries.Add(key, value)
}

func (cache *LruCache[K, V]) Get(key K) (V, bool) {
	return cache.entries.Get(key)
}

func (cache *LruCache[K, V]) Exists(key K) bool {
	return cache.entries.Contains(key)
}

func (cache *LruCache[K, V]) Delete(key K) {
	cache.entries.Remove(key)
}

func (cache *LruCache[K, V]) Purge() {
	cache.entries.Purge()
}

func (cache *LruCache[K, V]) Keys() []K {
	return cache.entries.Keys()
}
