package storage

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/deso-protocol/reccak/reccak"
	"github.com/stretchr/testify/require"
)

// testEntries maps digests, as keys, to the inputs that produced them.
func testEntries(numEntries int) map[string][]byte {
	entries := make(map[string][]byte, numEntries)
	for ii := 0; ii < numEntries; ii++ {
		input := []byte("input-" + strconv.Itoa(ii))
		digest := reccak.Hash(input)
		entries[string(digest.ToBytes())] = input
	}
	return entries
}

// GenericTest exercises a freshly set up, empty Database. It:
//  1. Writes numEntries digest -> input pairs.
//  2. Deletes numRemoved of them and checks they are gone.
//  3. Reads the rest back.
//  4. Iterates over everything and checks the keys come out sorted.
func GenericTest(t *testing.T, db Database, numEntries int, numRemoved int) {
	require := require.New(t)
	entries := testEntries(numEntries)

	require.NoError(db.Update(func(tx Transaction) error {
		for key, value := range entries {
			if err := tx.Set([]byte(key), value); err != nil {
				return err
			}
		}
		return nil
	}))

	var removedKeys []string
	for key := range entries {
		if len(removedKeys) == numRemoved {
			break
		}
		removedKeys = append(removedKeys, key)
	}
	require.NoError(db.Update(func(tx Transaction) error {
		for _, key := range removedKeys {
			if err := tx.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(db.View(func(tx Transaction) error {
		for _, key := range removedKeys {
			_, err := tx.Get([]byte(key))
			require.ErrorIs(err, ErrKeyNotFound)
			delete(entries, key)
		}
		for key, expected := range entries {
			value, err := tx.Get([]byte(key))
			require.NoError(err)
			require.Equal(expected, value)
		}
		return nil
	}))

	var iterated [][]byte
	require.NoError(db.View(func(tx Transaction) error {
		it, err := tx.GetIterator(nil)
		require.NoError(err)
		defer it.Close()
		for it.Next() {
			value, err := it.Value()
			require.NoError(err)
			require.Equal(entries[string(it.Key())], value)
			iterated = append(iterated, append([]byte(nil), it.Key()...))
		}
		return nil
	}))
	require.Len(iterated, len(entries))
	for ii := 1; ii < len(iterated); ii++ {
		require.Negative(bytes.Compare(iterated[ii-1], iterated[ii]))
	}
}
