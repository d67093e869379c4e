// Package pool provides a pooled byte buffer used by the loader to hold
// one record's payload bytes while it is being decoded, avoiding an
// allocation per record on a hot load path.
package pool

import "sync"

// RecordBufferDefaultSize is the default capacity handed out by the pool.
// Most DESC/INDOM/TEXT records are well under this; LABEL records with
// large JSON payloads simply grow the buffer as needed.
const RecordBufferDefaultSize = 4 * 1024

// ByteBuffer is a reusable byte slice holder.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Grow ensures the buffer has length n, growing the backing array if
// necessary. Existing contents up to the old length are preserved.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B) >= n {
		bb.B = bb.B[:n]
		return
	}

	next := make([]byte, n)
	copy(next, bb.B)
	bb.B = next
}

var recordBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(RecordBufferDefaultSize)
	},
}

// GetRecordBuffer returns a ByteBuffer from the pool, reset to zero length.
func GetRecordBuffer() *ByteBuffer {
	bb := recordBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutRecordBuffer returns bb to the pool for reuse.
func PutRecordBuffer(bb *ByteBuffer) {
	recordBufferPool.Put(bb)
}
