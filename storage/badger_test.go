package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBadger_Default_Generic runs the generic test against an on-disk database,
// once with plain transactions and once with write batches.
func TestBadger_Default_Generic(t *testing.T) {
	require := require.New(t)

	for _, useWriteBatch := range []bool{false, true} {
		dir := t.TempDir()
		db := NewBadgerDatabase(DefaultBadgerOptions(dir), useWriteBatch)
		require.NoError(db.Setup())

		GenericTest(t, db, 100, 20)
		require.NoError(db.Close())
		require.NoError(db.Erase())
		require.NoDirExists(dir)
	}
}

func TestBadger_InMemory_Generic(t *testing.T) {
	require := require.New(t)

	db := NewBadgerDatabase(InMemoryBadgerOptions(), false)
	require.NoError(db.Setup())
	defer db.Close()

	GenericTest(t, db, 50, 10)
}

// TestBadger_InMemory_Prefix checks that iterators stay within their prefix and that
// missing keys surface as ErrKeyNotFound.
func TestBadger_InMemory_Prefix(t *testing.T) {
	require := require.New(t)

	db := NewBadgerDatabase(InMemoryBadgerOptions(), false)
	require.NoError(db.Setup())
	defer db.Close()
	require.Equal(BADGERDB, db.Id())

	require.NoError(db.Update(func(tx Transaction) error {
		for _, key := range []string{"a1", "a2", "b1", "a3", "c"} {
			if err := tx.Set([]byte(key), []byte("v"+key)); err != nil {
				return err
			}
		}
		return nil
	}))

	var keys []string
	require.NoError(db.View(func(tx Transaction) error {
		it, err := tx.GetIterator([]byte("a"))
		require.NoError(err)
		defer it.Close()
		for it.Next() {
			value, err := it.Value()
			require.NoError(err)
			require.Equal("v"+string(it.Key()), string(value))
			keys = append(keys, string(it.Key()))
		}

		_, err = tx.Get([]byte("missing"))
		require.ErrorIs(err, ErrKeyNotFound)
		return nil
	}))
	require.Equal([]string{"a1", "a2", "a3"}, keys)
}
