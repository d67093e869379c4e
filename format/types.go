// Package format defines the wire-level primitive types shared by the
// wire and catalog packages: record types, the archive log version that
// selects a timestamp/indom/label encoding, the two timestamp wire
// shapes, packed units, and the metric descriptor.
//
// Nothing in this package touches an io.Reader or io.Writer; it holds
// only value types and pure conversions.
package format

import "fmt"

// RecordType identifies the kind of metadata record framed on disk.
type RecordType uint32

const (
	RecordDesc       RecordType = 1
	RecordIndomV2    RecordType = 2
	RecordLabelV2    RecordType = 3
	RecordText       RecordType = 4
	RecordIndom      RecordType = 5
	RecordLabel      RecordType = 6
	RecordIndomDelta RecordType = 7
)

func (t RecordType) String() string {
	switch t {
	case RecordDesc:
		return "DESC"
	case RecordIndomV2:
		return "INDOM_V2"
	case RecordLabelV2:
		return "LABEL_V2"
	case RecordText:
		return "TEXT"
	case RecordIndom:
		return "INDOM"
	case RecordLabel:
		return "LABEL"
	case RecordIndomDelta:
		return "INDOM_DELTA"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint32(t))
	}
}

// Known reports whether t is one of the record types this package can
// decode. INDOM_DELTA is framed but its payload is not interpreted
// here: it is a delta-of-full-list optimization this catalog never
// needs, since every indom insert already carries a full instance
// list, so the loader skips its payload like any other unknown type.
func (t RecordType) Known() bool {
	switch t {
	case RecordDesc, RecordIndomV2, RecordLabelV2, RecordText, RecordIndom, RecordLabel:
		return true
	default:
		return false
	}
}

// LogVersion selects which wire shape a record's timestamp, indom, and
// label payloads use. V2 archives use 32-bit timeval timestamps and the
// *_V2 record types; V3 archives use 64-bit timestamps and the plain
// record types.
type LogVersion int

const (
	LogVersionV2 LogVersion = 2
	LogVersionV3 LogVersion = 3
)

// Units is the packed pmUnits word: dimension and scale nibbles for
// space, time, and count, encoded exactly as PCP packs them on the wire.
// The catalog never decomposes the nibbles; it only needs bit-for-bit
// equality when checking descriptor conflicts, so Units stays an opaque
// comparable value.
type Units uint32

// Desc is a metric descriptor. Identity is PMID; for a given PMID the
// remaining fields must never change across records.
type Desc struct {
	PMID  uint32
	Type  int32
	Sem   int32
	Indom uint32
	Units Units
}

// Equal reports whether d and other have the same conflict-checked
// fields (Type, Sem, Indom, Units). PMID is not compared, so Equal
// checks a re-inserted descriptor against the one already on file for
// the same PMID without regard to identity.
func (d Desc) Equal(other Desc) bool {
	return d.Type == other.Type && d.Sem == other.Sem &&
		d.Indom == other.Indom && d.Units == other.Units
}
