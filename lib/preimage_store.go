package lib

import (
	"bytes"

	"github.com/deso-protocol/reccak/collections"
	"github.com/deso-protocol/reccak/encoding"
	"github.com/deso-protocol/reccak/reccak"
	"github.com/deso-protocol/reccak/storage"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// preimage_store.go remembers every preimage the search has found so a digest
// is never reversed twice for the same candidate size and alphabet.

// Prefixes for the keys stored in the preimage database.
const (
	PrefixPreimage byte = 0
)

var ErrPreimageMismatch = errors.New("preimage does not hash to digest")

// PreimageEntry is a decoded record of the store.
type PreimageEntry struct {
	Key      encoding.PreimageKey
	Preimage []byte
}

// PreimageStore persists preimages in a storage.Database with an LRU of recent
// lookups in front of it.
type PreimageStore struct {
	db    storage.Database
	cache *collections.LruCache[string, []byte]
}

// NewPreimageStore expects db to be set up already.
func NewPreimageStore(db storage.Database, cacheSize int) (*PreimageStore, error) {
	cache, err := collections.NewLruCache[string, []byte](cacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "NewPreimageStore: Problem creating cache")
	}
	return &PreimageStore{
		db:    db,
		cache: cache,
	}, nil
}

func _dbKeyForPreimage(key *encoding.PreimageKey) []byte {
	prefixCopy := []byte{PrefixPreimage}
	return append(prefixCopy, key.ToBytes()...)
}

func newPreimageKey(digest reccak.Digest, alphabet []byte, size int) *encoding.PreimageKey {
	return &encoding.PreimageKey{
		Digest:        digest,
		CandidateSize: uint64(size),
		AlphabetId:    encoding.NewAlphabetId(alphabet),
	}
}

// Get returns the stored preimage of digest among candidates of length size
// over alphabet, and whether there was one.
func (store *PreimageStore) Get(digest reccak.Digest, alphabet []byte, size int) (_preimage []byte, _found bool, _err error) {
	dbKey := _dbKeyForPreimage(newPreimageKey(digest, alphabet, size))
	if preimage, exists := store.cache.Get(string(dbKey)); exists {
		return append([]byte(nil), preimage...), true, nil
	}

	var preimage []byte
	err := store.db.View(func(txn storage.Transaction) error {
		value, err := txn.Get(dbKey)
		if err != nil {
			return err
		}
		preimage = value
		return nil
	})
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "PreimageStore.Get: Problem reading %v", digest)
	}

	store.cache.Put(string(dbKey), preimage)
	return preimage, true, nil
}

// Put records preimage as a solution for digest. Preimages that do not hash to
// digest, or that are not made of alphabet symbols, are rejected.
func (store *PreimageStore) Put(digest reccak.Digest, alphabet []byte, preimage []byte) error {
	if reccak.Hash(preimage) != digest {
		return errors.Wrapf(ErrPreimageMismatch, "PreimageStore.Put: %q does not hash to %v", preimage, digest)
	}
	for _, symbol := range preimage {
		if bytes.IndexByte(alphabet, symbol) < 0 {
			return errors.Errorf("PreimageStore.Put: Symbol %q of %q is not in the alphabet", symbol, preimage)
		}
	}

	dbKey := _dbKeyForPreimage(newPreimageKey(digest, alphabet, len(preimage)))
	err := store.db.Update(func(txn storage.Transaction) error {
		return txn.Set(dbKey, preimage)
	})
	if err != nil {
		return errors.Wrapf(err, "PreimageStore.Put: Problem writing %v", digest)
	}
	store.cache.Put(string(dbKey), append([]byte(nil), preimage...))
	glog.V(1).Infof("PreimageStore.Put: Stored preimage %q for %v", preimage, digest)
	return nil
}

// Entries returns every stored preimage ordered by key, i.e. by digest.
func (store *PreimageStore) Entries() ([]*PreimageEntry, error) {
	var entries []*PreimageEntry
	err := store.db.View(func(txn storage.Transaction) error {
		it, err := txn.GetIterator([]byte{PrefixPreimage})
		if err != nil {
			return err
		}
		defer it.Close()

		for it.Next() {
			entry := &PreimageEntry{}
			if err := entry.Key.FromBytes(it.Key()[1:]); err != nil {
				return err
			}
			if entry.Preimage, err = it.Value(); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "PreimageStore.Entries:")
	}
	return entries, nil
}
