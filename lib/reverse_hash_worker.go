package lib

import (
	"sync"

	"github.com/deso-protocol/reccak/candidates"
	"github.com/deso-protocol/reccak/reccak"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// reverse_hash_worker.go contains the long-lived worker goroutines that hash
// the candidates of a single chunk.

// ReverseHashJob is one worker's share of a search request.
type ReverseHashJob struct {
	RequestID      uuid.UUID
	Candidates     candidates.Iterator
	ExpectedDigest reccak.Digest

	// doneChan is closed once the request no longer needs this job, either
	// because another worker found a preimage or because the caller gave up.
	doneChan <-chan struct{}
}

type ReverseHashStatus uint8

const (
	ReverseHashFound ReverseHashStatus = iota
	ReverseHashExhausted
	ReverseHashCancelled
)

func (status ReverseHashStatus) String() string {
	switch status {
	case ReverseHashFound:
		return "FOUND"
	case ReverseHashExhausted:
		return "EXHAUSTED"
	case ReverseHashCancelled:
		return "CANCELLED"
	}
	return "UNKNOWN"
}

// ReverseHashResponse is sent exactly once per job.
type ReverseHashResponse struct {
	RequestID uuid.UUID
	WorkerID  int
	Status    ReverseHashStatus
	Preimage  []byte
	NumHashed uint64
}

type reverseHashWorker struct {
	id      int
	jobChan chan *ReverseHashJob
}

func newReverseHashWorker(id int) *reverseHashWorker {
	return &reverseHashWorker{
		id:      id,
		jobChan: make(chan *ReverseHashJob, 1),
	}
}

// start runs the worker loop until jobChan is closed. A job in progress is
// always finished (or cancelled through its doneChan) before the worker
// notices the close.
func (worker *reverseHashWorker) start(responseChan chan<- *ReverseHashResponse,
	hashCounter *HashCounter, stopWaitGroup *sync.WaitGroup) {

	go func() {
		defer stopWaitGroup.Done()
		for job := range worker.jobChan {
			responseChan <- worker.reverseHash(job, hashCounter)
		}
		glog.V(1).Infof("reverseHashWorker: Worker %d stopped", worker.id)
	}()
}

// reverseHash walks the job's candidates in order and returns on the first
// one whose digest matches, abandoning the rest of the chunk.
func (worker *reverseHashWorker) reverseHash(job *ReverseHashJob, hashCounter *HashCounter) *ReverseHashResponse {
	response := &ReverseHashResponse{
		RequestID: job.RequestID,
		WorkerID:  worker.id,
		Status:    ReverseHashExhausted,
	}
	unflushed := uint64(0)
	defer func() {
		hashCounter.Add(unflushed)
	}()

	for job.Candidates.Next() {
		select {
		case <-job.doneChan:
			response.Status = ReverseHashCancelled
			glog.V(1).Infof("reverseHashWorker: Worker %d cancelled after %d hashes (request %v)",
				worker.id, response.NumHashed, job.RequestID)
			return response
		default:
		}

		candidate := job.Candidates.Candidate()
		digest := reccak.Hash(candidate)
		response.NumHashed++
		unflushed++
		if unflushed == hashCountFlushInterval {
			hashCounter.Add(unflushed)
			unflushed = 0
		}

		if digest == job.ExpectedDigest {
			response.Status = ReverseHashFound
			response.Preimage = candidate
			glog.V(1).Infof("reverseHashWorker: Worker %d found preimage %q for %v (request %v)",
				worker.id, candidate, job.ExpectedDigest, job.RequestID)
			return response
		}
	}

	glog.V(1).Infof("reverseHashWorker: Worker %d exhausted its chunk after %d hashes (request %v)",
		worker.id, response.NumHashed, job.RequestID)
	return response
}
