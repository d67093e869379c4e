package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
)

// TextRecord is the decoded payload of a TEXT record: one help or
// oneline string bound to a pmid or indom.
type TextRecord struct {
	Type  uint32
	Ident uint32
	Text  string
}

// DecodeText parses a TEXT record payload: type, ident, then a
// NUL-terminated string. A type word without a content bit or without
// exactly one identifier bit yields errs.ErrBadTextType, which the
// caller may treat as skippable rather than fatal.
func DecodeText(payload []byte) (TextRecord, error) {
	if len(payload) < 4+4 {
		return TextRecord{}, fmt.Errorf("%w: TEXT payload too short", errs.ErrMalformedRecord)
	}

	typ := binary.BigEndian.Uint32(payload[0:4])
	if !format.ValidTextType(typ) {
		return TextRecord{}, fmt.Errorf("%w: type=%#x", errs.ErrBadTextType, typ)
	}

	ident := binary.BigEndian.Uint32(payload[4:8])

	text := payload[8:]
	if end := bytes.IndexByte(text, 0); end >= 0 {
		text = text[:end]
	}

	return TextRecord{Type: typ, Ident: ident, Text: string(text)}, nil
}

// EncodeText serializes a TextRecord to a TEXT record payload, the
// inverse of DecodeText. The string is written NUL-terminated.
func EncodeText(rec TextRecord) []byte {
	buf := make([]byte, 4+4+len(rec.Text)+1)
	binary.BigEndian.PutUint32(buf[0:4], rec.Type)
	binary.BigEndian.PutUint32(buf[4:8], rec.Ident)
	copy(buf[8:], rec.Text)

	return buf
}
