package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
)

// IndomRecord is the decoded payload of an INDOM or INDOM_V2 record.
type IndomRecord struct {
	Stamp     format.Timestamp
	Indom     uint32
	Instances []format.Instance
}

// DecodeIndom parses an INDOM/INDOM_V2 record payload: a version-shaped
// timestamp, indom, numinst, then parallel id and name-offset arrays
// followed by a block of NUL-terminated instance names.
//
// If numinst <= 0, Instances is nil; the record carries nothing for the
// catalog to insert.
func DecodeIndom(payload []byte, version format.LogVersion) (IndomRecord, error) {
	tsSize := format.TimestampSize(version)
	if len(payload) < tsSize+4+4 {
		return IndomRecord{}, fmt.Errorf("%w: INDOM payload too short", errs.ErrMalformedRecord)
	}

	stamp := format.DecodeTimestamp(version, payload[:tsSize])
	cursor := tsSize

	indom := binary.BigEndian.Uint32(payload[cursor : cursor+4])
	cursor += 4

	numinst := int32(binary.BigEndian.Uint32(payload[cursor : cursor+4]))
	cursor += 4

	if numinst <= 0 {
		return IndomRecord{Stamp: stamp, Indom: indom, Instances: nil}, nil
	}

	n := int(numinst)
	idsEnd := cursor + n*4
	offsEnd := idsEnd + n*4
	if offsEnd > len(payload) {
		return IndomRecord{}, fmt.Errorf("%w: INDOM instance arrays truncated", errs.ErrMalformedRecord)
	}

	ids := make([]int32, n)
	for i := 0; i < n; i++ {
		off := cursor + i*4
		ids[i] = int32(binary.BigEndian.Uint32(payload[off : off+4]))
	}

	offsets := make([]uint32, n)
	for i := 0; i < n; i++ {
		off := idsEnd + i*4
		offsets[i] = binary.BigEndian.Uint32(payload[off : off+4])
	}

	nameBlock := payload[offsEnd:]
	instances := make([]format.Instance, n)
	for i := 0; i < n; i++ {
		if int(offsets[i]) > len(nameBlock) {
			return IndomRecord{}, fmt.Errorf("%w: INDOM name offset out of range", errs.ErrMalformedRecord)
		}

		rest := nameBlock[offsets[i]:]
		end := bytes.IndexByte(rest, 0)
		if end < 0 {
			return IndomRecord{}, fmt.Errorf("%w: INDOM name missing terminator", errs.ErrMalformedRecord)
		}

		instances[i] = format.Instance{ID: ids[i], Name: string(rest[:end])}
	}

	return IndomRecord{Stamp: stamp, Indom: indom, Instances: instances}, nil
}

// EncodeIndom serializes an IndomRecord to an INDOM/INDOM_V2 record
// payload, the inverse of DecodeIndom.
func EncodeIndom(version format.LogVersion, rec IndomRecord) []byte {
	tsSize := format.TimestampSize(version)
	n := len(rec.Instances)

	nameBlock := make([]byte, 0, n*8)
	offsets := make([]uint32, n)
	for i, inst := range rec.Instances {
		offsets[i] = uint32(len(nameBlock))
		nameBlock = append(nameBlock, inst.Name...)
		nameBlock = append(nameBlock, 0)
	}

	size := tsSize + 4 + 4 + n*4 + n*4 + len(nameBlock)
	buf := make([]byte, size)

	format.EncodeTimestamp(version, buf[:tsSize], rec.Stamp)
	cursor := tsSize

	binary.BigEndian.PutUint32(buf[cursor:cursor+4], rec.Indom)
	cursor += 4

	binary.BigEndian.PutUint32(buf[cursor:cursor+4], uint32(int32(n)))
	cursor += 4

	idsEnd := cursor + n*4
	for i, inst := range rec.Instances {
		off := cursor + i*4
		binary.BigEndian.PutUint32(buf[off:off+4], uint32(inst.ID))
	}

	offsEnd := idsEnd + n*4
	for i, off := range offsets {
		at := idsEnd + i*4
		binary.BigEndian.PutUint32(buf[at:at+4], off)
	}

	copy(buf[offsEnd:], nameBlock)

	return buf
}
