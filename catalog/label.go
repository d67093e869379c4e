package catalog

import (
	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
)

// labelGroup is one timestamped batch of label sets for a (type, ident)
// pair.
type labelGroup struct {
	stamp format.Timestamp
	sets  []format.LabelSet
}

// AddLabels records a batch of label sets for a (type, ident) pair at
// the given time. The COMPOUND and OPTIONAL modifier bits are masked
// off the type, and context-level labels are stored under the null
// ident regardless of the ident the record carried.
//
// Groups for one (type, ident) form a chain sorted by descending
// timestamp; a new group with the same timestamp as existing ones is
// inserted ahead of them. No duplicate elimination happens here:
// batches are not guaranteed to arrive in chronological order, so
// duplicates can only be recognized once the chain has stabilized; see
// CheckDupLabels.
func (c *Catalog) AddLabels(typ, ident uint32, stamp format.Timestamp, sets []format.LabelSet) {
	typ = format.LabelTypeMask(typ)
	if typ == format.LabelContext {
		ident = format.IDNull
	}

	group := &labelGroup{stamp: stamp, sets: sets}

	c.mu.Lock()
	defer c.mu.Unlock()

	byIdent, ok := c.labels[typ]
	if !ok {
		byIdent = make(map[uint32][]*labelGroup)
		c.labels[typ] = byIdent
	}

	chain := byIdent[ident]

	at := len(chain)
	for i, cur := range chain {
		if cur.stamp.Compare(stamp) <= 0 {
			at = i
			break
		}
	}

	chain = append(chain, nil)
	copy(chain[at+1:], chain[at:])
	chain[at] = group
	byIdent[ident] = chain
}

// discardDupSets removes from sets every label set that is content-equal
// to some set in next, returning the surviving sets.
func discardDupSets(sets []format.LabelSet, next []format.LabelSet) []format.LabelSet {
	out := sets[:0]
	for _, set := range sets {
		dup := false
		for _, other := range next {
			if set.Equal(other) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, set)
		}
	}

	return out
}

// CheckDupLabels eliminates duplicate label sets across adjacent groups
// in every chain. Duplicates are very common in multi-archive contexts;
// since label groups are timestamped, only identical sets adjacent in
// time are actually duplicates. For each pair of time-adjacent groups
// the later group loses any set also present in the earlier one, and a
// group left empty is unlinked.
//
// The loader runs this once after scanning an archive. Callers doing
// incremental AddLabels writes at equal timestamps may observe
// temporary duplication until this pass runs.
func (c *Catalog) CheckDupLabels() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, byIdent := range c.labels {
		for ident, chain := range byIdent {
			i := 0
			for i < len(chain)-1 {
				cur, next := chain[i], chain[i+1]
				cur.sets = discardDupSets(cur.sets, next.sets)
				if len(cur.sets) == 0 {
					chain = append(chain[:i], chain[i+1:]...)
					continue
				}
				i++
			}
			byIdent[ident] = chain
		}
	}
}

// LookupLabel returns the label sets in effect for (type, ident) at the
// given time, or the latest sets when stamp is nil. The type is masked
// and context idents normalized the same way AddLabels does. A
// (type, ident) pair with no labels at all yields errs.ErrNoLabels;
// a chain whose earliest group is later than the requested time yields
// an empty result with no error.
func (c *Catalog) LookupLabel(typ, ident uint32, stamp *format.Timestamp) ([]format.LabelSet, error) {
	typ = format.LabelTypeMask(typ)
	if typ == format.LabelContext {
		ident = format.IDNull
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	byIdent, ok := c.labels[typ]
	if !ok {
		return nil, errs.ErrNoLabels
	}

	chain, ok := byIdent[ident]
	if !ok || len(chain) == 0 {
		return nil, errs.ErrNoLabels
	}

	group := chain[0]
	if stamp != nil {
		group = nil
		for _, g := range chain {
			if g.stamp.Compare(*stamp) <= 0 {
				group = g
				break
			}
		}
		if group == nil {
			return nil, nil
		}
	}

	out := make([]format.LabelSet, len(group.sets))
	copy(out, group.sets)

	return out, nil
}

// LabelGroupStamps returns the timestamps of the (type, ident) chain in
// chain order (descending), after the same type masking AddLabels
// applies.
func (c *Catalog) LabelGroupStamps(typ, ident uint32) []format.Timestamp {
	typ = format.LabelTypeMask(typ)
	if typ == format.LabelContext {
		ident = format.IDNull
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	byIdent, ok := c.labels[typ]
	if !ok {
		return nil
	}

	chain := byIdent[ident]
	stamps := make([]format.Timestamp, len(chain))
	for i, g := range chain {
		stamps[i] = g.stamp
	}

	return stamps
}
