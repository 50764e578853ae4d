// Package nbt writes the big-endian Named Binary Tag format used by Anvil
// region files.
package nbt

import (
	"encoding/binary"
	"io"
)

// Tag type IDs.
const (
	TagEnd       byte = 0
	TagByte      byte = 1
	TagInt       byte = 3
	TagLong      byte = 4
	TagByteArray byte = 7
	TagString    byte = 8
	TagList      byte = 9
	TagCompound  byte = 10
	TagIntArray  byte = 11
)

// Writer streams tags to an io.Writer. The first write error is kept and
// every later call is a no-op; check Err once the document is complete.
type Writer struct {
	w       io.Writer
	err     error
	scratch [8]byte
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered while writing.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) raw(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

func (w *Writer) u8(v byte) {
	w.scratch[0] = v
	w.raw(w.scratch[:1])
}

func (w *Writer) u16(v uint16) {
	binary.BigEndian.PutUint16(w.scratch[:2], v)
	w.raw(w.scratch[:2])
}

func (w *Writer) u32(v uint32) {
	binary.BigEndian.PutUint32(w.scratch[:4], v)
	w.raw(w.scratch[:4])
}

func (w *Writer) u64(v uint64) {
	binary.BigEndian.PutUint64(w.scratch[:8], v)
	w.raw(w.scratch[:8])
}

func (w *Writer) str(s string) {
	w.u16(uint16(len(s)))
	if s != "" {
		w.raw([]byte(s))
	}
}

// header writes a tag type and name. List elements have no header.
func (w *Writer) header(tag byte, name string) {
	w.u8(tag)
	w.str(name)
}

// Compound opens a named compound. Use name "" for the root.
func (w *Writer) Compound(name string) {
	w.header(TagCompound, name)
}

// End closes the innermost compound.
func (w *Writer) End() {
	w.u8(TagEnd)
}

// Byte writes a byte tag.
func (w *Writer) Byte(name string, v byte) {
	w.header(TagByte, name)
	w.u8(v)
}

// Int writes an int tag.
func (w *Writer) Int(name string, v int32) {
	w.header(TagInt, name)
	w.u32(uint32(v))
}

// Long writes a long tag.
func (w *Writer) Long(name string, v int64) {
	w.header(TagLong, name)
	w.u64(uint64(v))
}

// String writes a string tag.
func (w *Writer) String(name, v string) {
	w.header(TagString, name)
	w.str(v)
}

// ByteArray writes a byte array tag.
func (w *Writer) ByteArray(name string, v []byte) {
	w.header(TagByteArray, name)
	w.u32(uint32(len(v)))
	w.raw(v)
}

// IntArray writes an int array tag.
func (w *Writer) IntArray(name string, v []int32) {
	w.header(TagIntArray, name)
	w.u32(uint32(len(v)))
	for _, x := range v {
		w.u32(uint32(x))
	}
}

// List opens a list of n elements of type elem. Compound elements are
// written as bare field sequences, each closed with End.
func (w *Writer) List(name string, elem byte, n int) {
	w.header(TagList, name)
	w.u8(elem)
	w.u32(uint32(n))
}
