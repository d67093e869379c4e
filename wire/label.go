package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
)

// LabelRecord is the decoded payload of a LABEL or LABEL_V2 record.
type LabelRecord struct {
	Stamp format.Timestamp
	Type  uint32
	Ident uint32
	Sets  []format.LabelSet
}

// LabelLimits bounds what a label decode will accept from the stream.
// Zero values select the package defaults.
type LabelLimits struct {
	// MaxJSONLen bounds one set's JSON blob length.
	MaxJSONLen int
	// MaxLabels bounds one set's label count.
	MaxLabels int
}

func (l LabelLimits) jsonLen() int {
	if l.MaxJSONLen <= 0 {
		return format.MaxLabelJSONLen
	}

	return l.MaxJSONLen
}

func (l LabelLimits) labels() int {
	if l.MaxLabels <= 0 {
		return format.MaxLabels
	}

	return l.MaxLabels
}

func decodeLabelStruct(buf []byte) format.Label {
	return format.Label{
		NameOffset:  binary.BigEndian.Uint16(buf[0:2]),
		NameLen:     binary.BigEndian.Uint16(buf[2:4]),
		ValueOffset: binary.BigEndian.Uint16(buf[4:6]),
		ValueLen:    binary.BigEndian.Uint16(buf[6:8]),
		Flags:       binary.BigEndian.Uint16(buf[8:10]),
	}
}

func encodeLabelStruct(buf []byte, l format.Label) {
	binary.BigEndian.PutUint16(buf[0:2], l.NameOffset)
	binary.BigEndian.PutUint16(buf[2:4], l.NameLen)
	binary.BigEndian.PutUint16(buf[4:6], l.ValueOffset)
	binary.BigEndian.PutUint16(buf[6:8], l.ValueLen)
	binary.BigEndian.PutUint16(buf[8:10], l.Flags)
	buf[10] = 0
	buf[11] = 0
}

// DecodeLabel parses a LABEL/LABEL_V2 record payload: a version-shaped
// timestamp, label type, ident, nsets, then per set the instance id,
// JSON length and bytes, and a label count followed by that many
// fixed-size label structs. A negative label count is an error code
// recorded by the writer; the set is kept with no labels.
func DecodeLabel(payload []byte, version format.LogVersion, limits LabelLimits) (LabelRecord, error) {
	tsSize := format.TimestampSize(version)
	if len(payload) < tsSize+4+4+4 {
		return LabelRecord{}, fmt.Errorf("%w: LABEL payload too short", errs.ErrMalformedRecord)
	}

	stamp := format.DecodeTimestamp(version, payload[:tsSize])
	cursor := tsSize

	typ := binary.BigEndian.Uint32(payload[cursor : cursor+4])
	cursor += 4

	ident := binary.BigEndian.Uint32(payload[cursor : cursor+4])
	cursor += 4

	nsets := int32(binary.BigEndian.Uint32(payload[cursor : cursor+4]))
	cursor += 4

	if nsets < 0 {
		return LabelRecord{}, fmt.Errorf("%w: LABEL nsets negative", errs.ErrMalformedRecord)
	}

	sets := make([]format.LabelSet, 0, nsets)
	for i := int32(0); i < nsets; i++ {
		if cursor+8 > len(payload) {
			return LabelRecord{}, fmt.Errorf("%w: LABEL set header truncated", errs.ErrMalformedRecord)
		}

		inst := int32(binary.BigEndian.Uint32(payload[cursor : cursor+4]))
		cursor += 4

		jsonlen := int(int32(binary.BigEndian.Uint32(payload[cursor : cursor+4])))
		cursor += 4

		if jsonlen < 0 || jsonlen > limits.jsonLen() {
			return LabelRecord{}, fmt.Errorf("%w: jsonlen=%d", errs.ErrLabelJSONTooLarge, jsonlen)
		}
		if cursor+jsonlen+4 > len(payload) {
			return LabelRecord{}, fmt.Errorf("%w: LABEL json truncated", errs.ErrMalformedRecord)
		}

		json := make([]byte, jsonlen)
		copy(json, payload[cursor:cursor+jsonlen])
		cursor += jsonlen

		nlabels := int32(binary.BigEndian.Uint32(payload[cursor : cursor+4]))
		cursor += 4

		set := format.LabelSet{Inst: inst, JSON: json}

		// nlabels < 0 is an error code recorded in-stream; skip it here.
		if nlabels > 0 {
			n := int(nlabels)
			if n > limits.labels() || cursor+n*format.LabelWireSize > len(payload) {
				return LabelRecord{}, fmt.Errorf("%w: nlabels=%d", errs.ErrLabelCountOverflow, nlabels)
			}

			set.Labels = make([]format.Label, n)
			for j := 0; j < n; j++ {
				set.Labels[j] = decodeLabelStruct(payload[cursor : cursor+format.LabelWireSize])
				cursor += format.LabelWireSize
			}
		}

		sets = append(sets, set)
	}

	return LabelRecord{Stamp: stamp, Type: typ, Ident: ident, Sets: sets}, nil
}

// EncodeLabel serializes a LabelRecord to a LABEL/LABEL_V2 record
// payload, the inverse of DecodeLabel.
func EncodeLabel(version format.LogVersion, rec LabelRecord) []byte {
	tsSize := format.TimestampSize(version)

	size := tsSize + 4 + 4 + 4
	for _, set := range rec.Sets {
		size += 4 + 4 + len(set.JSON) + 4 + len(set.Labels)*format.LabelWireSize
	}

	buf := make([]byte, size)
	format.EncodeTimestamp(version, buf[:tsSize], rec.Stamp)
	cursor := tsSize

	binary.BigEndian.PutUint32(buf[cursor:cursor+4], rec.Type)
	cursor += 4

	binary.BigEndian.PutUint32(buf[cursor:cursor+4], rec.Ident)
	cursor += 4

	binary.BigEndian.PutUint32(buf[cursor:cursor+4], uint32(len(rec.Sets)))
	cursor += 4

	for _, set := range rec.Sets {
		binary.BigEndian.PutUint32(buf[cursor:cursor+4], uint32(set.Inst))
		cursor += 4

		binary.BigEndian.PutUint32(buf[cursor:cursor+4], uint32(len(set.JSON)))
		cursor += 4

		copy(buf[cursor:], set.JSON)
		cursor += len(set.JSON)

		binary.BigEndian.PutUint32(buf[cursor:cursor+4], uint32(int32(len(set.Labels))))
		cursor += 4

		for _, l := range set.Labels {
			encodeLabelStruct(buf[cursor:cursor+format.LabelWireSize], l)
			cursor += format.LabelWireSize
		}
	}

	return buf
}
