package format

import "encoding/binary"

// Timestamp is a (seconds, nanoseconds) pair. Comparison is
// lexicographic: sec first, then nsec.
type Timestamp struct {
	Sec  int64
	Nsec int32
}

// Compare returns -1, 0, or 1 as t is before, equal to, or after other.
func (t Timestamp) Compare(other Timestamp) int {
	switch {
	case t.Sec < other.Sec:
		return -1
	case t.Sec > other.Sec:
		return 1
	case t.Nsec < other.Nsec:
		return -1
	case t.Nsec > other.Nsec:
		return 1
	default:
		return 0
	}
}

// Before reports whether t happened strictly before other.
func (t Timestamp) Before(other Timestamp) bool { return t.Compare(other) < 0 }

// After reports whether t happened strictly after other.
func (t Timestamp) After(other Timestamp) bool { return t.Compare(other) > 0 }

// TimestampV3Size is the wire size of the V3 (64-bit sec, 32-bit nsec) form.
const TimestampV3Size = 8 + 4

// TimestampV2Size is the wire size of the V2 (32-bit sec, 32-bit usec) timeval form.
const TimestampV2Size = 4 + 4

// DecodeTimestampV3 reads a 64-bit-seconds/32-bit-nanoseconds timestamp
// from the front of buf. buf must be at least TimestampV3Size bytes.
func DecodeTimestampV3(buf []byte) Timestamp {
	sec := int64(binary.BigEndian.Uint64(buf[0:8]))
	nsec := int32(binary.BigEndian.Uint32(buf[8:12]))
	return Timestamp{Sec: sec, Nsec: nsec}
}

// EncodeTimestampV3 writes t to buf in the 64-bit-seconds/32-bit-nanoseconds
// wire form. buf must be at least TimestampV3Size bytes.
func EncodeTimestampV3(buf []byte, t Timestamp) {
	binary.BigEndian.PutUint64(buf[0:8], uint64(t.Sec))
	binary.BigEndian.PutUint32(buf[8:12], uint32(t.Nsec))
}

// DecodeTimestampV2 reads a 32-bit-seconds/32-bit-microseconds "timeval"
// timestamp from the front of buf, converting microseconds to
// nanoseconds. buf must be at least TimestampV2Size bytes.
func DecodeTimestampV2(buf []byte) Timestamp {
	sec := int64(int32(binary.BigEndian.Uint32(buf[0:4])))
	usec := int32(binary.BigEndian.Uint32(buf[4:8]))
	return Timestamp{Sec: sec, Nsec: usec * 1000}
}

// EncodeTimestampV2 writes t to buf in the 32-bit-seconds/32-bit-microseconds
// wire form, truncating nanoseconds to microseconds. buf must be at
// least TimestampV2Size bytes.
func EncodeTimestampV2(buf []byte, t Timestamp) {
	binary.BigEndian.PutUint32(buf[0:4], uint32(int32(t.Sec)))
	binary.BigEndian.PutUint32(buf[4:8], uint32(t.Nsec/1000))
}

// DecodeTimestamp reads a timestamp in the wire shape selected by
// version from the front of buf.
func DecodeTimestamp(version LogVersion, buf []byte) Timestamp {
	if version == LogVersionV2 {
		return DecodeTimestampV2(buf)
	}

	return DecodeTimestampV3(buf)
}

// EncodeTimestamp writes t to buf in the wire shape selected by version.
func EncodeTimestamp(version LogVersion, buf []byte, t Timestamp) {
	if version == LogVersionV2 {
		EncodeTimestampV2(buf, t)
		return
	}

	EncodeTimestampV3(buf, t)
}

// TimestampSize returns the wire size of a timestamp in the given version.
func TimestampSize(version LogVersion) int {
	if version == LogVersionV2 {
		return TimestampV2Size
	}

	return TimestampV3Size
}
