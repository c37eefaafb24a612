package metadata

// MRS is the metadata analogue of a domain result set: an ordered,
// de-duplicated accumulation of annotation hits. There is no mode concept.
type MRS struct {
	hits  []MDHit
	index map[string]int // annotation id -> position
}

// NewMRS builds an MRS, de-duplicating by annotation id and keeping the
// first occurrence.
func NewMRS(hits []MDHit) *MRS {
	m := &MRS{
		hits:  make([]MDHit, 0, len(hits)),
		index: make(map[string]int, len(hits)),
	}
	for _, h := range hits {
		m.Add(h)
	}
	return m
}

// Add appends a hit unless its id is already present.
func (m *MRS) Add(h MDHit) {
	if _, ok := m.index[h.ID]; ok {
		return
	}
	m.index[h.ID] = len(m.hits)
	m.hits = append(m.hits, h)
}

// Extend adds every hit of the given batch.
func (m *MRS) Extend(hits []MDHit) {
	for _, h := range hits {
		m.Add(h)
	}
}

// Hits returns the accumulated records in stable insertion order.
func (m *MRS) Hits() []MDHit {
	out := make([]MDHit, len(m.hits))
	copy(out, m.hits)
	return out
}

// Size returns the number of distinct records.
func (m *MRS) Size() int {
	return len(m.hits)
}

// Contains reports membership by annotation id.
func (m *MRS) Contains(id string) bool {
	_, ok := m.index[id]
	return ok
}
