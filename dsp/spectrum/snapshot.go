package spectrum

import (
	"math"
	"sync/atomic"
)

const maxSnapshotRetries = 8

// published is a single-writer seqlock over atomically stored float bits.
// The writer bumps seq to an odd value, stores every bin, and bumps it back
// to even. Readers retry when seq was odd or changed during the copy.
type published struct {
	seq  atomic.Uint64
	bins []atomic.Uint64
}

func newPublished(n int) published {
	return published{bins: make([]atomic.Uint64, n)}
}

func (p *published) store(src []float64) {
	p.seq.Add(1)
	for i, v := range src {
		p.bins[i].Store(math.Float64bits(v))
	}
	p.seq.Add(1)
}

// load copies min(len(dst), len(bins)) values and reports whether they all
// belong to the same published frame.
func (p *published) load(dst []float64) bool {
	n := min(len(dst), len(p.bins))

	for range maxSnapshotRetries {
		before := p.seq.Load()
		if before&1 == 1 {
			continue
		}

		for i := range n {
			dst[i] = math.Float64frombits(p.bins[i].Load())
		}

		if p.seq.Load() == before {
			return true
		}
	}

	return false
}
