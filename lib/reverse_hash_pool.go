package lib

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/deso-protocol/go-deadlock"
	"github.com/deso-protocol/reccak/candidates"
	"github.com/deso-protocol/reccak/reccak"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// reverse_hash_pool.go contains the coordinator that splits a candidate space
// across a fixed set of workers and collects the first preimage found.

var (
	ErrInvalidWorkerCount = errors.New("worker count must be positive")
	ErrPoolStopped        = errors.New("reverse hash pool is stopped")
	ErrPreimageNotFound   = errors.New("no preimage found in the search space")
)

// HashCounter counts hashes computed across all workers.
type HashCounter struct {
	count atomic.Uint64
}

func (counter *HashCounter) Add(delta uint64) {
	if delta > 0 {
		counter.count.Add(delta)
	}
}

func (counter *HashCounter) Load() uint64 {
	return counter.count.Load()
}

// SearchChunk is the contiguous sub-range [Offset, Offset+Size) of the
// candidate space assigned to one worker.
type SearchChunk struct {
	Offset uint64
	Size   uint64
}

// PartitionSearchSpace splits total candidates into numChunks contiguous
// chunks. The remainder of the division goes one candidate at a time to the
// first chunks, so the chunks cover the space exactly and differ in size by at
// most one.
func PartitionSearchSpace(total uint64, numChunks int) []SearchChunk {
	if numChunks <= 0 {
		return nil
	}
	chunkSize := total / uint64(numChunks)
	remainder := total % uint64(numChunks)

	chunks := make([]SearchChunk, numChunks)
	offset := uint64(0)
	for ii := range chunks {
		size := chunkSize
		if uint64(ii) < remainder {
			size++
		}
		chunks[ii] = SearchChunk{Offset: offset, Size: size}
		offset += size
	}
	return chunks
}

// ReverseHashPool owns a fixed set of worker goroutines, each with a private
// job channel, sharing one response channel with the coordinator.
type ReverseHashPool struct {
	workers      []*reverseHashWorker
	responseChan chan *ReverseHashResponse
	hashCounter  HashCounter

	// requestMtx serializes requests; responses of two interleaved requests
	// would otherwise mix on the shared response channel.
	requestMtx    deadlock.Mutex
	stopped       bool
	stopWaitGroup sync.WaitGroup
}

// NewReverseHashPool spawns numWorkers workers right away.
func NewReverseHashPool(numWorkers int) (*ReverseHashPool, error) {
	if numWorkers < 1 {
		return nil, errors.Wrapf(ErrInvalidWorkerCount, "NewReverseHashPool: got %d", numWorkers)
	}

	pool := &ReverseHashPool{
		workers: make([]*reverseHashWorker, numWorkers),
		// Every job answers exactly once, so this never blocks a worker.
		responseChan: make(chan *ReverseHashResponse, numWorkers),
	}
	pool.stopWaitGroup.Add(numWorkers)
	for ii := range pool.workers {
		worker := newReverseHashWorker(ii + 1)
		glog.V(1).Infof("ReverseHashPool: Spawning worker %d", worker.id)
		worker.start(pool.responseChan, &pool.hashCounter, &pool.stopWaitGroup)
		pool.workers[ii] = worker
	}
	glog.Infof("ReverseHashPool: Started %d workers", numWorkers)
	return pool, nil
}

func (pool *ReverseHashPool) NumWorkers() int {
	return len(pool.workers)
}

// NumHashed is the number of candidates hashed since the pool started.
func (pool *ReverseHashPool) NumHashed() uint64 {
	return pool.hashCounter.Load()
}

// HashCounter is the pool-wide counter. Drivers that hash outside the pool's
// workers, like FindAny, add to it so NumHashed covers them too.
func (pool *ReverseHashPool) HashCounter() *HashCounter {
	return &pool.hashCounter
}

// ReverseHash searches every candidate of length size over alphabet for one
// whose digest is expectedDigest. It blocks until a worker finds one, every
// worker has exhausted its chunk (ErrPreimageNotFound), or ctx is done.
//
// When several candidates match, which one is returned depends on scheduling.
// Once a match is in, the remaining workers are cancelled and their responses
// drained before returning, leaving the pool idle for the next request.
func (pool *ReverseHashPool) ReverseHash(ctx context.Context, alphabet []byte, size int,
	expectedDigest reccak.Digest) (_preimage []byte, _err error) {

	pool.requestMtx.Lock()
	defer pool.requestMtx.Unlock()

	if pool.stopped {
		return nil, ErrPoolStopped
	}

	enumerator, err := candidates.NewEnumerator(alphabet, size)
	if err != nil {
		return nil, errors.Wrapf(err, "ReverseHashPool.ReverseHash:")
	}

	requestID := uuid.New()
	requestCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeStart := time.Now()
	hashedBefore := pool.NumHashed()
	chunks := PartitionSearchSpace(enumerator.Total(), len(pool.workers))
	glog.V(1).Infof("ReverseHashPool.ReverseHash: Request %v: searching %d candidates of size %d "+
		"for %v across %d workers", requestID, enumerator.Total(), size, expectedDigest, len(pool.workers))

	for ii, worker := range pool.workers {
		worker.jobChan <- &ReverseHashJob{
			RequestID:      requestID,
			Candidates:     candidates.NewRange(enumerator, chunks[ii].Offset, chunks[ii].Size),
			ExpectedDigest: expectedDigest,
			doneChan:       requestCtx.Done(),
		}
	}

	var preimage []byte
	for pending := len(pool.workers); pending > 0; pending-- {
		response := <-pool.responseChan
		glog.V(2).Infof("ReverseHashPool.ReverseHash: Request %v: worker %d answered %v after %d hashes",
			requestID, response.WorkerID, response.Status, response.NumHashed)
		if response.Status == ReverseHashFound && preimage == nil {
			preimage = response.Preimage
			cancel()
		}
	}

	elapsed := time.Since(timeStart)
	glog.V(1).Infof("ReverseHashPool.ReverseHash: Request %v finished in %v (%s)", requestID, elapsed,
		FormatHashRate(pool.NumHashed()-hashedBefore, elapsed))

	if preimage != nil {
		return preimage, nil
	}
	if ctx.Err() != nil {
		return nil, errors.Wrapf(ctx.Err(), "ReverseHashPool.ReverseHash: Request %v", requestID)
	}
	return nil, errors.Wrapf(ErrPreimageNotFound, "ReverseHashPool.ReverseHash: %v", expectedDigest)
}

// Stop signals every worker through its job channel and waits for all of them
// to exit. A request in flight completes first. Stop is idempotent.
func (pool *ReverseHashPool) Stop() {
	pool.requestMtx.Lock()
	defer pool.requestMtx.Unlock()

	if pool.stopped {
		return
	}
	pool.stopped = true
	for _, worker := range pool.workers {
		glog.V(1).Infof("ReverseHashPool.Stop: Shutting down worker %d", worker.id)
		close(worker.jobChan)
	}
	pool.stopWaitGroup.Wait()
	glog.Infof("ReverseHashPool.Stop: All %d workers stopped", len(pool.workers))
}
