package storage

import "github.com/pkg/errors"

type DatabaseId byte

const (
	BADGERDB DatabaseId = 0
)

// ErrKeyNotFound is returned by Transaction.Get when the key is absent, whatever the backing database.
var ErrKeyNotFound = errors.New("key not found")

// Database is a unified interface for Key-Value databases. Using an additional layer of abstraction atop a native database
// lets components such as the preimage store be written against a configurable database implementation, and lets tests
// swap in a throwaway directory.
//
// The Database interface organization is inspired by the BadgerDB API. We have the intuitive API to access the database:
// - Update() - used for Read-Write access to the database
// - View()   - used for Read-Only access to the database
// Note that both of these methods are using a callback function, similar to the BadgerDB API.
// Lastly, the Database interface has methods responsible for database control, such as:
// - Setup() - used to initialize the database
// - Close() - used to close the database
// - Erase() - used to erase the database
type Database interface {
	Setup() error
	Update(func(Transaction) error) error
	View(func(Transaction) error) error
	Close() error
	Erase() error
	Id() DatabaseId
}

// Transaction is a unified interface for database transactions inside a Database Update or View callback. It's a simple
// interface that allows us to perform basic database operations such as:
// - Set()         - used to set a key-value pair
// - Delete()      - used to delete a key-value pair
// - Get()         - used to get a value for a given key, ErrKeyNotFound if absent
// - GetIterator() - used to get an Iterator instance on a provided key prefix
type Transaction interface {
	Set(key []byte, value []byte) error
	Delete(key []byte) error
	Get(key []byte) ([]byte, error)
	GetIterator(prefix []byte) (Iterator, error)
}

// Iterator is a unified interface for database iterators. The current implementation only supports forward iteration.
// When using the Iterator, the following assumptions must be followed:
//
//	Assumption #1: Newly initialized Iterator always points to nil. Calling Next() moves the iterator to the first key-value pair.
//	Assumption #2: Next() returns false whenever all keys have been exhausted in the current prefix.
//	Assumption #3: Close() must be called after the iterator is no longer needed.
//
// This assumption enables the following for-loop usage pattern for the Iterator:
//
//	defer it.Close()
//	for it.Next() {
//		key := it.Key()
//		value, err := it.Value()
//		...
//	}
type Iterator interface {
	Value() ([]byte, error)
	Key() []byte
	Next() bool
	Close()
}
