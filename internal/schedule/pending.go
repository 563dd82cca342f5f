package schedule

import "github.com/orderpay/schedule/internal/domain"

// PendingSet tracks records edited locally and not yet persisted. Each
// mark carries a sequence number so that a push only clears the marks it
// actually carried.
type PendingSet struct {
	seq   uint64
	marks map[domain.RecordKey]uint64
}

// PendingMarks is a point-in-time copy of a PendingSet.
type PendingMarks map[domain.RecordKey]uint64

func NewPendingSet() *PendingSet {
	return &PendingSet{marks: make(map[domain.RecordKey]uint64)}
}

func (p *PendingSet) Mark(keys ...domain.RecordKey) {
	for _, k := range keys {
		p.seq++
		p.marks[k] = p.seq
	}
}

func (p *PendingSet) Has(k domain.RecordKey) bool {
	_, ok := p.marks[k]
	return ok
}

func (p *PendingSet) Len() int { return len(p.marks) }

func (p *PendingSet) Snapshot() PendingMarks {
	snap := make(PendingMarks, len(p.marks))
	for k, v := range p.marks {
		snap[k] = v
	}
	return snap
}

// Release clears the marks captured in snap unless the key was edited
// again after the snapshot was taken.
func (p *PendingSet) Release(snap PendingMarks) {
	for k, v := range snap {
		if p.marks[k] == v {
			delete(p.marks, k)
		}
	}
}

func (p *PendingSet) Reset() {
	p.marks = make(map[domain.RecordKey]uint64)
}
