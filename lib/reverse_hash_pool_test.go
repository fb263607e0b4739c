package lib

import (
	"context"
	"testing"
	"time"

	"github.com/deso-protocol/reccak/candidates"
	"github.com/deso-protocol/reccak/reccak"
	"github.com/stretchr/testify/require"
)

func TestPartitionSearchSpace(t *testing.T) {
	require := require.New(t)

	for _, total := range []uint64{0, 1, 7, 81 * 81, 1000003} {
		for _, numChunks := range []int{1, 2, 3, 8, 13, 100} {
			chunks := PartitionSearchSpace(total, numChunks)
			require.Len(chunks, numChunks)

			offset := uint64(0)
			minSize, maxSize := chunks[0].Size, chunks[0].Size
			for _, chunk := range chunks {
				require.Equal(offset, chunk.Offset)
				offset += chunk.Size
				minSize = min(minSize, chunk.Size)
				maxSize = max(maxSize, chunk.Size)
			}
			// No tail is left out and chunks stay balanced.
			require.Equal(total, offset, "total=%d chunks=%d", total, numChunks)
			require.LessOrEqual(maxSize-minSize, uint64(1))
		}
	}
	require.Nil(PartitionSearchSpace(10, 0))
}

func TestNewReverseHashPoolRejectsZeroWorkers(t *testing.T) {
	require := require.New(t)

	_, err := NewReverseHashPool(0)
	require.ErrorIs(err, ErrInvalidWorkerCount)
}

func TestReverseHashKnownDigest(t *testing.T) {
	require := require.New(t)

	pool, err := NewReverseHashPool(4)
	require.NoError(err)
	defer pool.Stop()

	known := KnownDigests[0]
	preimage, err := pool.ReverseHash(context.Background(), []byte(DefaultCharset), known.CandidateSize, known.Digest)
	require.NoError(err)
	require.Len(preimage, known.CandidateSize)
	require.Equal(known.Digest, reccak.Hash(preimage))
}

func TestReverseHashEveryWorkerCount(t *testing.T) {
	require := require.New(t)

	alphabet := []byte("abcdefg")
	enumerator, err := candidates.NewEnumerator(alphabet, 3)
	require.NoError(err)

	// The first and the very last candidates are the edges of the first and
	// last chunk, which is where an off-by-one in the partitioning shows up.
	var all [][]byte
	for enumerator.Next() {
		all = append(all, enumerator.Candidate())
	}
	targets := [][]byte{all[0], all[len(all)/2], all[len(all)-1]}

	for numWorkers := 1; numWorkers <= 9; numWorkers++ {
		pool, err := NewReverseHashPool(numWorkers)
		require.NoError(err)
		for _, target := range targets {
			preimage, err := pool.ReverseHash(context.Background(), alphabet, 3, reccak.Hash(target))
			require.NoError(err, "workers=%d target=%q", numWorkers, target)
			require.Equal(reccak.Hash(target), reccak.Hash(preimage))
		}
		pool.Stop()
	}
}

func TestReverseHashMoreWorkersThanCandidates(t *testing.T) {
	require := require.New(t)

	pool, err := NewReverseHashPool(16)
	require.NoError(err)
	defer pool.Stop()

	preimage, err := pool.ReverseHash(context.Background(), []byte("xy"), 2, reccak.Hash([]byte("yx")))
	require.NoError(err)
	require.Equal([]byte("yx"), preimage)
}

func TestReverseHashNotFound(t *testing.T) {
	require := require.New(t)

	pool, err := NewReverseHashPool(3)
	require.NoError(err)
	defer pool.Stop()

	hashedBefore := pool.NumHashed()
	_, err = pool.ReverseHash(context.Background(), []byte("abc"), 2, reccak.Hash([]byte("zz")))
	require.ErrorIs(err, ErrPreimageNotFound)
	require.Equal(uint64(9), pool.NumHashed()-hashedBefore)

	// The pool is still usable afterwards.
	preimage, err := pool.ReverseHash(context.Background(), []byte("abc"), 2, reccak.Hash([]byte("cb")))
	require.NoError(err)
	require.Equal([]byte("cb"), preimage)
}

func TestReverseHashContextCancelled(t *testing.T) {
	require := require.New(t)

	pool, err := NewReverseHashPool(2)
	require.NoError(err)
	defer pool.Stop()

	// 81^8 candidates, nowhere near finishing before the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = pool.ReverseHash(ctx, []byte(DefaultCharset), 8, reccak.Digest{})
	require.ErrorIs(err, context.DeadlineExceeded)
}

func TestReverseHashInvalidArguments(t *testing.T) {
	require := require.New(t)

	pool, err := NewReverseHashPool(2)
	require.NoError(err)
	defer pool.Stop()

	_, err = pool.ReverseHash(context.Background(), nil, 2, reccak.Digest{})
	require.ErrorIs(err, candidates.ErrEmptyAlphabet)

	_, err = pool.ReverseHash(context.Background(), []byte("ab"), 0, reccak.Digest{})
	require.ErrorIs(err, candidates.ErrInvalidSize)
}

func TestReverseHashAfterStop(t *testing.T) {
	require := require.New(t)

	pool, err := NewReverseHashPool(2)
	require.NoError(err)
	pool.Stop()
	pool.Stop()

	_, err = pool.ReverseHash(context.Background(), []byte("ab"), 1, reccak.Hash([]byte("a")))
	require.ErrorIs(err, ErrPoolStopped)
}

func TestReverseHashConcurrentRequests(t *testing.T) {
	require := require.New(t)

	pool, err := NewReverseHashPool(3)
	require.NoError(err)
	defer pool.Stop()

	alphabet := []byte("abcdef")
	targets := []string{"abc", "fed", "aaa", "fff", "cab", "bad"}
	type result struct {
		target   string
		preimage []byte
		err      error
	}
	resultChan := make(chan result, len(targets))
	for _, target := range targets {
		go func() {
			preimage, err := pool.ReverseHash(context.Background(), alphabet, 3, reccak.Hash([]byte(target)))
			resultChan <- result{target, preimage, err}
		}()
	}
	for range targets {
		res := <-resultChan
		require.NoError(res.err)
		require.Equal(reccak.Hash([]byte(res.target)), reccak.Hash(res.preimage))
	}
}

func TestFindAny(t *testing.T) {
	require := require.New(t)

	known := KnownDigests[0]
	preimage, err := FindAny(context.Background(), 4, []byte(DefaultCharset), known.CandidateSize, known.Digest, nil)
	require.NoError(err)
	require.Equal(known.Digest, reccak.Hash(preimage))

	_, err = FindAny(context.Background(), 2, []byte("abc"), 2, reccak.Hash([]byte("zz")), nil)
	require.ErrorIs(err, ErrPreimageNotFound)

	_, err = FindAny(context.Background(), 0, []byte("abc"), 2, reccak.Digest{}, nil)
	require.ErrorIs(err, ErrInvalidWorkerCount)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FindAny(ctx, 2, []byte(DefaultCharset), 8, reccak.Digest{}, nil)
	require.ErrorIs(err, context.Canceled)
}

func TestFindAnyCountsHashes(t *testing.T) {
	require := require.New(t)

	// An exhaustive miss hashes every candidate exactly once.
	counter := &HashCounter{}
	_, err := FindAny(context.Background(), 3, []byte("abcdefgh"), 5, reccak.Digest{}, counter)
	require.ErrorIs(err, ErrPreimageNotFound)
	require.Equal(uint64(8*8*8*8*8), counter.Load())

	pool, err := NewReverseHashPool(2)
	require.NoError(err)
	defer pool.Stop()

	known := KnownDigests[0]
	_, err = FindAny(context.Background(), 2, []byte(DefaultCharset), known.CandidateSize, known.Digest, pool.HashCounter())
	require.NoError(err)
	require.Positive(pool.NumHashed())
}
