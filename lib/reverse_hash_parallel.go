package lib

import (
	"context"

	"github.com/deso-protocol/reccak/candidates"
	"github.com/deso-protocol/reccak/reccak"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// errPreimageFound stops the errgroup once any worker has a match.
var errPreimageFound = errors.New("preimage found")

// FindAny is a pool-less alternative to ReverseHashPool.ReverseHash. A single
// producer feeds candidates in enumeration order to numWorkers short-lived
// goroutines, and the first match cancels everyone else. It trades the
// pool's up-front partitioning for a shared queue, so no worker sits idle
// while another still has a long chunk left.
//
// Hashes are added to hashCounter, if not nil, in batches like the pool's
// workers do, so stats reporting sees both drivers alike.
func FindAny(ctx context.Context, numWorkers int, alphabet []byte, size int,
	expectedDigest reccak.Digest, hashCounter *HashCounter) ([]byte, error) {

	if hashCounter == nil {
		hashCounter = &HashCounter{}
	}

	if numWorkers < 1 {
		return nil, errors.Wrapf(ErrInvalidWorkerCount, "FindAny: got %d", numWorkers)
	}
	enumerator, err := candidates.NewEnumerator(alphabet, size)
	if err != nil {
		return nil, errors.Wrapf(err, "FindAny:")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	candidateChan := make(chan []byte, 64*numWorkers)
	foundChan := make(chan []byte, 1)

	group.Go(func() error {
		defer close(candidateChan)
		for enumerator.Next() {
			select {
			case candidateChan <- enumerator.Candidate():
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		}
		return nil
	})

	for ii := 0; ii < numWorkers; ii++ {
		group.Go(func() error {
			unflushed := uint64(0)
			defer func() {
				hashCounter.Add(unflushed)
			}()

			for candidate := range candidateChan {
				if groupCtx.Err() != nil {
					return nil
				}
				digest := reccak.Hash(candidate)
				unflushed++
				if unflushed == hashCountFlushInterval {
					hashCounter.Add(unflushed)
					unflushed = 0
				}
				if digest != expectedDigest {
					continue
				}
				select {
				case foundChan <- candidate:
				default:
				}
				return errPreimageFound
			}
			return nil
		})
	}

	err = group.Wait()
	switch {
	case errors.Is(err, errPreimageFound):
		return <-foundChan, nil
	case err != nil:
		return nil, errors.Wrapf(err, "FindAny:")
	}
	return nil, errors.Wrapf(ErrPreimageNotFound, "FindAny: %v", expectedDigest)
}
