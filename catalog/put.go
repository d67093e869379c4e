package catalog

import (
	"fmt"
	"io"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
	"github.com/jkter/pcpmeta/wire"
)

// indomRecordType returns the record type for an instance domain
// record in the catalog's log version.
func (c *Catalog) indomRecordType() format.RecordType {
	if c.version == format.LogVersionV2 {
		return format.RecordIndomV2
	}

	return format.RecordIndom
}

func (c *Catalog) labelRecordType() format.RecordType {
	if c.version == format.LogVersionV2 {
		return format.RecordLabelV2
	}

	return format.RecordLabel
}

// PutDesc appends a DESC record for the descriptor and its names to w,
// then applies the same in-memory update the loader would: the
// descriptor is recorded (subject to the frozen-field conflict checks)
// and each name is inserted into the namespace tree.
func (c *Catalog) PutDesc(w io.Writer, desc format.Desc, names []string) error {
	if w == nil {
		return errs.ErrNotWritable
	}

	payload := wire.EncodeDesc(wire.DescRecord{Desc: desc, Names: names})
	if err := wire.WriteRecord(w, format.RecordDesc, payload); err != nil {
		return fmt.Errorf("pcpmeta: desc record write: %w", err)
	}

	if err := c.AddDesc(desc); err != nil {
		return err
	}

	for _, name := range names {
		if err := c.AddName(desc.PMID, name); err != nil {
			return err
		}
	}

	return nil
}

// PutIndom appends an instance domain record to w in the catalog's log
// version, then records the snapshot in memory. The catalog takes
// ownership of instances and sorts it in place. InsertDuplicate means
// the snapshot matched an existing one at the same timestamp and was
// not added; the record has still been written.
func (c *Catalog) PutIndom(w io.Writer, indom uint32, stamp format.Timestamp, instances []format.Instance) (InsertResult, error) {
	if w == nil {
		return InsertOK, errs.ErrNotWritable
	}

	payload := wire.EncodeIndom(c.version, wire.IndomRecord{
		Stamp:     stamp,
		Indom:     indom,
		Instances: instances,
	})
	if err := wire.WriteRecord(w, c.indomRecordType(), payload); err != nil {
		return InsertOK, fmt.Errorf("pcpmeta: indom record write: %w", err)
	}

	return c.AddIndom(indom, stamp, instances), nil
}

// PutLabels appends a label record to w in the catalog's log version,
// then records the group in memory. As with AddLabels, no duplicate
// elimination happens on insert.
func (c *Catalog) PutLabels(w io.Writer, typ, ident uint32, stamp format.Timestamp, sets []format.LabelSet) error {
	if w == nil {
		return errs.ErrNotWritable
	}

	payload := wire.EncodeLabel(c.version, wire.LabelRecord{
		Stamp: stamp,
		Type:  typ,
		Ident: ident,
		Sets:  sets,
	})
	if err := wire.WriteRecord(w, c.labelRecordType(), payload); err != nil {
		return fmt.Errorf("pcpmeta: label record write: %w", err)
	}

	c.AddLabels(typ, ident, stamp, sets)

	return nil
}

// PutText appends a TEXT record to w, then records the string in
// memory. The type word must carry a content bit and exactly one
// identifier bit.
func (c *Catalog) PutText(w io.Writer, ident, typ uint32, text string) error {
	if w == nil {
		return errs.ErrNotWritable
	}
	if !format.ValidTextType(typ) {
		return fmt.Errorf("%w: type=%#x", errs.ErrBadTextType, typ)
	}

	payload := wire.EncodeText(wire.TextRecord{Type: typ, Ident: ident, Text: text})
	if err := wire.WriteRecord(w, format.RecordText, payload); err != nil {
		return fmt.Errorf("pcpmeta: text record write: %w", err)
	}

	c.AddText(ident, typ, text)

	return nil
}
