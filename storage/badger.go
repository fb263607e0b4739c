package storage

import (
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

type BadgerDatabase struct {
	db            *badger.DB
	opts          badger.Options
	useWriteBatch bool
}

func NewBadgerDatabase(opts badger.Options, useWriteBatch bool) *BadgerDatabase {
	return &BadgerDatabase{
		db:            nil,
		opts:          opts,
		useWriteBatch: useWriteBatch,
	}
}

func (bdb *BadgerDatabase) Setup() error {
	db, err := badger.Open(bdb.opts)
	if err != nil {
		return errors.Wrapf(err, "Setup:")
	}
	bdb.db = db
	return nil
}

func (bdb *BadgerDatabase) Update(fn func(Transaction) error) error {
	var wb *badger.WriteBatch
	if bdb.useWriteBatch {
		wb = bdb.db.NewWriteBatch()
		defer wb.Cancel()
	}

	err := bdb.db.Update(func(txn *badger.Txn) error {
		return fn(NewBadgerTransaction(txn, wb))
	})
	if err != nil {
		return errors.Wrapf(err, "Update:")
	}

	if bdb.useWriteBatch {
		if err = wb.Flush(); err != nil {
			return errors.Wrapf(err, "Update: Problem flushing write batch")
		}
	}
	return nil
}

func (bdb *BadgerDatabase) View(fn func(Transaction) error) error {
	return bdb.db.View(func(txn *badger.Txn) error {
		return fn(NewBadgerTransaction(txn, nil))
	})
}

func (bdb *BadgerDatabase) Close() error {
	return bdb.db.Close()
}

func (bdb *BadgerDatabase) Erase() error {
	return os.RemoveAll(bdb.opts.Dir)
}

func (bdb *BadgerDatabase) Id() DatabaseId {
	return BADGERDB
}

// ==========================
// BadgerTransaction
// ==========================

type BadgerTransaction struct {
	txn *badger.Txn
	wb  *badger.WriteBatch
}

func NewBadgerTransaction(txn *badger.Txn, wb *badger.WriteBatch) *BadgerTransaction {
	return &BadgerTransaction{
		txn: txn,
		wb:  wb,
	}
}

func (btx *BadgerTransaction) Set(key []byte, value []byte) error {
	if btx.wb != nil {
		return btx.wb.Set(key, value)
	}
	return btx.txn.Set(key, value)
}

func (btx *BadgerTransaction) Delete(key []byte) error {
	if btx.wb != nil {
		return btx.wb.Delete(key)
	}
	return btx.txn.Delete(key)
}

func (btx *BadgerTransaction) Get(key []byte) ([]byte, error) {
	item, err := btx.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Get:")
	}
	return item.ValueCopy(nil)
}

func (btx *BadgerTransaction) GetIterator(prefix []byte) (Iterator, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := btx.txn.NewIterator(opts)
	it.Seek(prefix)
	return NewBadgerIterator(it, prefix), nil
}

// ==========================
// BadgerIterator
// ==========================

type BadgerIterator struct {
	it          *badger.Iterator
	prefix      []byte
	initialized bool
}

func NewBadgerIterator(it *badger.Iterator, prefix []byte) *BadgerIterator {
	return &BadgerIterator{
		it:          it,
		prefix:      prefix,
		initialized: false,
	}
}

func (bit *BadgerIterator) Value() ([]byte, error) {
	item := bit.it.Item()
	return item.ValueCopy(nil)
}

func (bit *BadgerIterator) Key() []byte {
	return bit.it.Item().KeyCopy(nil)
}

func (bit *BadgerIterator) Next() bool {
	if !bit.initialized {
		bit.initialized = true
		return bit.it.ValidForPrefix(bit.prefix)
	}

	bit.it.Next()
	return bit.it.ValidForPrefix(bit.prefix)
}

func (bit *BadgerIterator) Close() {
	bit.it.Close()
}

func DefaultBadgerOptions(dir string) badger.Options {
	opts := badger.DefaultOptions(dir)

	opts.Logger = nil
	return opts
}

// InMemoryBadgerOptions keep everything in RAM; used when preimages should not
// outlive the process and in tests.
func InMemoryBadgerOptions() badger.Options {
	opts := badger.DefaultOptions("").WithInMemory(true)

	opts.Logger = nil
	return opts
}
