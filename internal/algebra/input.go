package algebra

import (
	"strconv"

	"disco/internal/drs"
	"disco/internal/errors"
)

// inputKind tags the accepted shapes of a general input.
type inputKind int

const (
	inputNone inputKind = iota
	inputNid
	inputString
	inputNode
	inputHit
	inputDRS
)

// Input is the tagged variant the normalizer accepts: absence, an
// identifier, a free-form string, a node descriptor, a Hit, or a DRS.
// Construct it with one of the From* constructors; the zero value is
// absence.
type Input struct {
	kind inputKind
	nid  uint64
	str  string
	node [3]string
	hit  drs.Hit
	set  *drs.DRS
}

// NoInput denotes absence; it normalizes to the empty accumulator.
func NoInput() Input {
	return Input{kind: inputNone}
}

// FromNid wraps a catalog identifier.
func FromNid(nid uint64) Input {
	return Input{kind: inputNid, nid: nid}
}

// FromString wraps a free-form string. A string that parses as an integer
// resolves as an identifier; anything else is treated as a table name.
func FromString(s string) Input {
	return Input{kind: inputString, str: s}
}

// FromNode wraps a (database, source, field) descriptor.
func FromNode(db, source, field string) Input {
	return Input{kind: inputNode, node: [3]string{db, source, field}}
}

// FromHit wraps an existing Hit.
func FromHit(h drs.Hit) Input {
	return Input{kind: inputHit, hit: h}
}

// FromDRS wraps an existing DRS; it normalizes to itself.
func FromDRS(d *drs.DRS) Input {
	return Input{kind: inputDRS, set: d}
}

// IsNone reports whether the input denotes absence.
func (in Input) IsNone() bool {
	return in.kind == inputNone
}

// ToDRS coerces a general input into a canonical DRS. Resolution order
// matters: a numeric string resolves as an identifier before the table-name
// branch runs. Unknown shapes fail with UNSUPPORTED_INPUT.
func (a *Algebra) ToDRS(in Input) (*drs.DRS, error) {
	switch in.kind {
	case inputDRS:
		if in.set == nil {
			return drs.NewEmpty(), nil
		}
		return in.set, nil

	case inputNone:
		return drs.NewEmpty(), nil

	case inputNid:
		hit, err := a.nidToHit(in.nid)
		if err != nil {
			return nil, err
		}
		return a.hitToDRS(hit)

	case inputString:
		if nid, err := strconv.ParseUint(in.str, 10, 64); err == nil {
			hit, err := a.nidToHit(nid)
			if err != nil {
				return nil, err
			}
			return a.hitToDRS(hit)
		}
		// Plain string: a table name, expanded to its columns.
		hits, err := a.network.HitsForTable(in.str)
		if err != nil {
			return nil, err
		}
		return drs.New(hits, drs.NewOperation(drs.OpOrigin)), nil

	case inputNode:
		hit := drs.NewHit(in.node[0], in.node[1], in.node[2], 0)
		return a.hitToDRS(hit)

	case inputHit:
		return a.hitToDRS(in.hit)
	}

	return nil, errors.New(errors.UnsupportedInput,
		"input is not absent, an identifier, a node descriptor, a Hit, or a DRS")
}

// ToFieldsDRS normalizes and forces column granularity: every table-mode
// Hit is expanded to its column Hits and the expansions are unioned in.
func (a *Algebra) ToFieldsDRS(in Input) (*drs.DRS, error) {
	d, err := a.ToDRS(in)
	if err != nil {
		return nil, err
	}
	if d.Mode() == drs.ModeFields {
		return d, nil
	}

	out := drs.NewEmpty()
	out.AbsorbProvenance(d)
	for _, h := range d.Hits() {
		expanded, err := a.tableHitToDRS(h)
		if err != nil {
			return nil, err
		}
		out.Absorb(expanded.SetFieldsMode())
	}
	return out, nil
}

// nidToHit resolves an identifier against the network, yielding a
// zero-score Hit.
func (a *Algebra) nidToHit(nid uint64) (drs.Hit, error) {
	hits, err := a.network.InfoFor([]uint64{nid})
	if err != nil {
		return drs.Hit{}, err
	}
	if len(hits) == 0 {
		return drs.Hit{}, errors.Newf(errors.NodeNotFound, "no catalog node with id %d", nid)
	}
	hit := hits[0]
	hit.Score = 0
	return hit, nil
}

// hitToDRS resolves a single Hit: a table placeholder expands to its
// columns in table mode, a column Hit becomes a one-element fields DRS.
func (a *Algebra) hitToDRS(hit drs.Hit) (*drs.DRS, error) {
	if hit.IsTable() {
		return a.tableHitToDRS(hit)
	}
	return drs.New([]drs.Hit{hit}, drs.NewOperation(drs.OpOrigin)), nil
}

// tableHitToDRS expands a Hit's table into all of its column Hits, tagged
// with the originating Hit and table mode.
func (a *Algebra) tableHitToDRS(hit drs.Hit) (*drs.DRS, error) {
	hits, err := a.network.HitsForTable(hit.SourceName)
	if err != nil {
		return nil, err
	}
	d := drs.New(hits, drs.NewOperation(drs.OpTable, hit))
	d.SetTableMode()
	return d, nil
}
