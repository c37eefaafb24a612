package drs

// Mode governs the granularity of a DRS and the compatibility of binary
// combinators. Fields-mode Hits denote columns; table-mode Hits denote
// whole tables.
type Mode int

const (
	// ModeFields is column granularity
	ModeFields Mode = iota
	// ModeTable is table granularity
	ModeTable
)

func (m Mode) String() string {
	if m == ModeTable {
		return "table"
	}
	return "fields"
}

// DRS is an ordered, de-duplicated collection of Hits with a mode tag and a
// provenance trail. Insertion order is stable for reproducibility but carries
// no semantics; identity is Hit.Nid. A DRS is mutated only through
// append-style combinators and is not safe for concurrent use.
type DRS struct {
	hits       []Hit
	index      map[uint64]int // nid -> position in hits
	mode       Mode
	provenance []Operation
}

// New builds a DRS from hits, de-duplicating by nid and keeping the first
// occurrence. An OpNone operation marks an empty accumulator and is not
// recorded in the trail.
func New(hits []Hit, op Operation) *DRS {
	d := &DRS{
		hits:  make([]Hit, 0, len(hits)),
		index: make(map[uint64]int, len(hits)),
	}
	for _, h := range hits {
		d.add(h)
	}
	if op.Kind != OpNone {
		d.provenance = append(d.provenance, op)
	}
	return d
}

// NewEmpty builds the default accumulator: no hits, no provenance.
func NewEmpty() *DRS {
	return New(nil, NewOperation(OpNone))
}

func (d *DRS) add(h Hit) {
	if _, ok := d.index[h.Nid]; ok {
		return
	}
	d.index[h.Nid] = len(d.hits)
	d.hits = append(d.hits, h)
}

// Hits returns the contained Hits in stable insertion order.
func (d *DRS) Hits() []Hit {
	out := make([]Hit, len(d.hits))
	copy(out, d.hits)
	return out
}

// Size returns the number of distinct Hits.
func (d *DRS) Size() int {
	return len(d.hits)
}

// Empty reports whether the DRS holds no Hits.
func (d *DRS) Empty() bool {
	return len(d.hits) == 0
}

// Contains reports membership by nid.
func (d *DRS) Contains(nid uint64) bool {
	_, ok := d.index[nid]
	return ok
}

// Mode returns the granularity tag.
func (d *DRS) Mode() Mode {
	return d.mode
}

// SetTableMode tags the DRS as table granularity. This is an unchecked
// assertion point: the caller is responsible for the Hits matching the mode.
func (d *DRS) SetTableMode() *DRS {
	d.mode = ModeTable
	return d
}

// SetFieldsMode tags the DRS as column granularity.
func (d *DRS) SetFieldsMode() *DRS {
	d.mode = ModeFields
	return d
}

// Provenance returns the ordered derivation trail, own and absorbed.
func (d *DRS) Provenance() []Operation {
	out := make([]Operation, len(d.provenance))
	copy(out, d.provenance)
	return out
}

// Absorb adds other's Hits and appends other's trail. No mode check: used
// where both sides are already known-compatible. Returns the receiver.
func (d *DRS) Absorb(other *DRS) *DRS {
	if other == nil {
		return d
	}
	for _, h := range other.hits {
		d.add(h)
	}
	return d.AbsorbProvenance(other)
}

// AbsorbProvenance appends other's trail without touching membership.
// Absorption is monotonic: the existing trail is never discarded.
func (d *DRS) AbsorbProvenance(other *DRS) *DRS {
	if other == nil || d == other {
		return d
	}
	d.provenance = append(d.provenance, other.provenance...)
	return d
}

// Union returns a new DRS holding Hits present in either operand, with both
// trails absorbed. The left operand's trail precedes the right's.
func (d *DRS) Union(other *DRS) *DRS {
	out := NewEmpty()
	out.mode = d.mode
	out.Absorb(d)
	out.Absorb(other)
	return out
}

// Intersection returns a new DRS holding Hits present in both operands, with
// both trails absorbed.
func (d *DRS) Intersection(other *DRS) *DRS {
	out := NewEmpty()
	out.mode = d.mode
	for _, h := range d.hits {
		if other.Contains(h.Nid) {
			out.add(h)
		}
	}
	out.AbsorbProvenance(d)
	out.AbsorbProvenance(other)
	return out
}

// Difference returns a new DRS holding Hits of the receiver whose nid is
// absent from other, with both trails absorbed.
func (d *DRS) Difference(other *DRS) *DRS {
	out := NewEmpty()
	out.mode = d.mode
	for _, h := range d.hits {
		if !other.Contains(h.Nid) {
			out.add(h)
		}
	}
	out.AbsorbProvenance(d)
	out.AbsorbProvenance(other)
	return out
}

// Equal reports whether two result sets hold the same Hit set by nid.
// Provenance and order are ignored.
func (d *DRS) Equal(other *DRS) bool {
	if other == nil || len(d.hits) != len(other.hits) {
		return false
	}
	for nid := range d.index {
		if !other.Contains(nid) {
			return false
		}
	}
	return true
}
