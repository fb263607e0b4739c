package candidates

// Range is a bounded view of an Enumerator: skip candidates are passed over on
// the first call to Next, then at most take candidates are produced. The skip
// is lazy so the goroutine that consumes the range pays for it, not the one
// that builds it.
type Range struct {
	enumerator *Enumerator
	offset     uint64
	skip       uint64
	take       uint64
	remaining  uint64
}

// NewRange forks enumerator, so the caller's enumerator is left untouched
// and can seed further ranges.
func NewRange(enumerator *Enumerator, skip uint64, take uint64) *Range {
	return &Range{
		enumerator: enumerator.Fork(),
		offset:     skip,
		skip:       skip,
		take:       take,
		remaining:  take,
	}
}

// Len is the number of candidates the range was bounded to.
func (rr *Range) Len() uint64 {
	return rr.take
}

// Offset is the number of candidates skipped before the range starts.
func (rr *Range) Offset() uint64 {
	return rr.offset
}

func (rr *Range) Next() bool {
	if rr.skip > 0 {
		rr.enumerator.Skip(rr.skip)
		rr.skip = 0
	}
	if rr.remaining == 0 {
		return false
	}
	if !rr.enumerator.Next() {
		rr.remaining = 0
		return false
	}
	rr.remaining--
	return true
}

func (rr *Range) Candidate() []byte {
	return rr.enumerator.Candidate()
}
