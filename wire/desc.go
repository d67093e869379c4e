package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
)

// DescWireSize is the on-disk size of a Desc: pmid, type, sem, indom, units.
const DescWireSize = 4 + 4 + 4 + 4 + 4

// DescRecord is the decoded payload of a DESC record: the descriptor
// plus the metric names that resolve to its pmid.
type DescRecord struct {
	Desc  format.Desc
	Names []string
}

// DecodeDesc parses a DESC record payload: Desc, numnames, then numnames
// (len, name-bytes) entries.
func DecodeDesc(payload []byte) (DescRecord, error) {
	if len(payload) < DescWireSize+4 {
		return DescRecord{}, fmt.Errorf("%w: DESC payload too short", errs.ErrMalformedRecord)
	}

	desc := format.Desc{
		PMID:  binary.BigEndian.Uint32(payload[0:4]),
		Type:  int32(binary.BigEndian.Uint32(payload[4:8])),
		Sem:   int32(binary.BigEndian.Uint32(payload[8:12])),
		Indom: binary.BigEndian.Uint32(payload[12:16]),
		Units: format.Units(binary.BigEndian.Uint32(payload[16:20])),
	}

	cursor := DescWireSize
	numnames := binary.BigEndian.Uint32(payload[cursor : cursor+4])
	cursor += 4

	names := make([]string, 0, numnames)
	for i := uint32(0); i < numnames; i++ {
		if cursor+4 > len(payload) {
			return DescRecord{}, fmt.Errorf("%w: DESC name length truncated", errs.ErrMalformedRecord)
		}

		nameLen := int(binary.BigEndian.Uint32(payload[cursor : cursor+4]))
		cursor += 4

		if nameLen < 0 || cursor+nameLen > len(payload) {
			return DescRecord{}, fmt.Errorf("%w: DESC name bytes truncated", errs.ErrMalformedRecord)
		}

		names = append(names, string(payload[cursor:cursor+nameLen]))
		cursor += nameLen
	}

	return DescRecord{Desc: desc, Names: names}, nil
}

// EncodeDesc serializes a DescRecord to a DESC record payload, the
// inverse of DecodeDesc.
func EncodeDesc(rec DescRecord) []byte {
	size := DescWireSize + 4
	for _, name := range rec.Names {
		size += 4 + len(name)
	}

	buf := make([]byte, size)
	binary.BigEndian.PutUint32(buf[0:4], rec.Desc.PMID)
	binary.BigEndian.PutUint32(buf[4:8], uint32(rec.Desc.Type))
	binary.BigEndian.PutUint32(buf[8:12], uint32(rec.Desc.Sem))
	binary.BigEndian.PutUint32(buf[12:16], rec.Desc.Indom)
	binary.BigEndian.PutUint32(buf[16:20], uint32(rec.Desc.Units))

	cursor := DescWireSize
	binary.BigEndian.PutUint32(buf[cursor:cursor+4], uint32(len(rec.Names)))
	cursor += 4

	for _, name := range rec.Names {
		binary.BigEndian.PutUint32(buf[cursor:cursor+4], uint32(len(name)))
		cursor += 4
		copy(buf[cursor:cursor+len(name)], name)
		cursor += len(name)
	}

	return buf
}
