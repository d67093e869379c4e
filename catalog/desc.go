package catalog

import (
	"errors"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
	"github.com/jkter/pcpmeta/pmns"
)

// AddDesc records a metric descriptor. The first descriptor seen for a
// pmid is frozen: a later insert with the same pmid must match it
// field-for-field, and the first differing field group determines the
// error returned (type, then semantics, then indom, then units). A
// matching re-insert is a no-op.
func (c *Catalog) AddDesc(desc format.Desc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.addDescLocked(desc)
}

func (c *Catalog) addDescLocked(desc format.Desc) error {
	if old, ok := c.descs[desc.PMID]; ok {
		switch {
		case desc.Type != old.Type:
			return errs.ErrChangeType
		case desc.Sem != old.Sem:
			return errs.ErrChangeSem
		case desc.Indom != old.Indom:
			return errs.ErrChangeIndom
		case desc.Units != old.Units:
			return errs.ErrChangeUnits
		}

		return nil
	}

	c.descs[desc.PMID] = desc
	c.descIDs = append(c.descIDs, desc.PMID)

	return nil
}

// AddName binds a metric name to a pmid in the namespace tree. A
// duplicate name already bound to a different pmid is downgraded to
// success: partial readability of an archive beats rejecting it
// outright over one corrupt metric id.
func (c *Catalog) AddName(pmid uint32, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.names.Insert(pmid, name)

	var dup *pmns.ErrDuplicateName
	if errors.As(err, &dup) {
		return nil
	}

	return err
}

// LookupDesc returns the descriptor recorded for pmid, or
// errs.ErrPMIDNotFound.
func (c *Catalog) LookupDesc(pmid uint32) (format.Desc, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	desc, ok := c.descs[pmid]
	if !ok {
		return format.Desc{}, errs.ErrPMIDNotFound
	}

	return desc, nil
}

// DescIDs returns the pmids of all recorded descriptors in the order
// they were first seen. Rewriting a catalog to a new archive in this
// order reproduces the original descriptor sequence.
func (c *Catalog) DescIDs() []uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]uint32, len(c.descIDs))
	copy(ids, c.descIDs)

	return ids
}

// NumDescs returns the number of distinct descriptors recorded.
func (c *Catalog) NumDescs() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.descs)
}
