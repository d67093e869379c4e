// Package wire encodes and decodes the length-prefixed,
// network-byte-order record framing of a PCP archive metadata stream,
// and the per-record-type payloads: DESC, INDOM/INDOM_V2,
// LABEL/LABEL_V2, and TEXT.
//
// Each record on disk has the shape
//
//	[len: u32][type: u32][payload: len-12 bytes][len: u32]
//
// with the trailing length repeating the leading one; a mismatch marks
// the record (and the stream from that point) as corrupt.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
)

// HeaderSize is the size of the fixed record header: total length (u32)
// and record type (u32).
const HeaderSize = 4 + 4

// TrailerSize is the size of the record trailer: a repeated total length (u32).
const TrailerSize = 4

// FrameOverhead is the number of bytes a record's on-disk length
// includes beyond its payload (header + trailer).
const FrameOverhead = HeaderSize + TrailerSize

// Header is the fixed 8-byte record header.
type Header struct {
	Len  uint32
	Type format.RecordType
}

// ReadHeader reads an 8-byte record header from r. io.EOF is returned
// when r is exhausted before a full header could be read, at a clean
// record boundary or partway into one, so scanners terminate cleanly
// at end-of-stream either way.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte

	_, err := io.ReadFull(r, buf[:])
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return Header{}, io.EOF
	}
	if err != nil {
		return Header{}, fmt.Errorf("%w: header read: %v", errs.ErrMalformedRecord, err)
	}

	var hdr Header
	if err := hdr.Parse(buf[:]); err != nil {
		return Header{}, err
	}

	return hdr, nil
}

// Parse fills h from the 8-byte wire form at the front of buf.
func (h *Header) Parse(buf []byte) error {
	if len(buf) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, got %d", errs.ErrMalformedRecord, HeaderSize, len(buf))
	}

	h.Len = binary.BigEndian.Uint32(buf[0:4])
	h.Type = format.RecordType(binary.BigEndian.Uint32(buf[4:8]))

	return nil
}

// Bytes serializes h to its 8-byte wire form.
func (h Header) Bytes() []byte {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(buf[0:4], h.Len)
	binary.BigEndian.PutUint32(buf[4:8], uint32(h.Type))

	return buf
}

// ReadTrailer reads the 4-byte trailer length from r.
func ReadTrailer(r io.Reader) (uint32, error) {
	var buf [TrailerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: trailer read: %v", errs.ErrMalformedRecord, err)
	}

	return binary.BigEndian.Uint32(buf[:]), nil
}

// PayloadLen returns the number of payload bytes a record with the
// given total on-disk length carries.
func PayloadLen(totalLen uint32) int {
	return int(totalLen) - FrameOverhead
}

// WriteRecord frames payload with a header of the given type and a
// matching trailer, and writes header+payload+trailer to w.
func WriteRecord(w io.Writer, typ format.RecordType, payload []byte) error {
	total := uint32(FrameOverhead + len(payload))
	hdr := Header{Len: total, Type: typ}

	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}

	trailer := make([]byte, TrailerSize)
	binary.BigEndian.PutUint32(trailer, total)
	if _, err := w.Write(trailer); err != nil {
		return err
	}

	return nil
}
