package nbt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestWriteByte(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Byte("test", 42)

	data := buf.Bytes()
	if data[0] != TagByte {
		t.Fatalf("expected tag type %d, got %d", TagByte, data[0])
	}
	if n := binary.BigEndian.Uint16(data[1:3]); n != 4 {
		t.Fatalf("expected name length 4, got %d", n)
	}
	if string(data[3:7]) != "test" {
		t.Fatalf("expected name 'test', got %q", string(data[3:7]))
	}
	if data[7] != 42 {
		t.Fatalf("expected value 42, got %d", data[7])
	}
}

func TestWriteInt(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Int("x", -12345)

	data := buf.Bytes()
	if data[0] != TagInt {
		t.Fatalf("expected tag type %d, got %d", TagInt, data[0])
	}
	// tag(1) + name_len(2) + name(1)
	if v := int32(binary.BigEndian.Uint32(data[4:8])); v != -12345 {
		t.Fatalf("expected -12345, got %d", v)
	}
}

func TestWriteLong(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Long("t", 1<<40)

	data := buf.Bytes()
	if len(data) != 1+2+1+8 {
		t.Fatalf("expected 12 bytes, got %d", len(data))
	}
	if v := int64(binary.BigEndian.Uint64(data[4:12])); v != 1<<40 {
		t.Fatalf("expected %d, got %d", int64(1<<40), v)
	}
}

func TestWriteByteArray(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.ByteArray("ba", []byte{1, 2, 3})

	data := buf.Bytes()
	if data[0] != TagByteArray {
		t.Fatalf("expected tag type %d, got %d", TagByteArray, data[0])
	}
	// tag(1) + name_len(2) + name(2), then length(4) + data(3)
	if n := binary.BigEndian.Uint32(data[5:9]); n != 3 {
		t.Fatalf("expected array length 3, got %d", n)
	}
	if !bytes.Equal(data[9:12], []byte{1, 2, 3}) {
		t.Fatalf("expected [1,2,3], got %v", data[9:12])
	}
}

func TestWriteIntArray(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.IntArray("ia", []int32{7, -1})

	data := buf.Bytes()
	if n := binary.BigEndian.Uint32(data[5:9]); n != 2 {
		t.Fatalf("expected array length 2, got %d", n)
	}
	if v := int32(binary.BigEndian.Uint32(data[9:13])); v != 7 {
		t.Fatalf("expected first element 7, got %d", v)
	}
	if v := int32(binary.BigEndian.Uint32(data[13:17])); v != -1 {
		t.Fatalf("expected second element -1, got %d", v)
	}
}

func TestWriteString(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.String("s", "hello")

	data := buf.Bytes()
	if data[0] != TagString {
		t.Fatalf("expected tag type %d, got %d", TagString, data[0])
	}
	if n := binary.BigEndian.Uint16(data[4:6]); n != 5 {
		t.Fatalf("expected string length 5, got %d", n)
	}
	if string(data[6:11]) != "hello" {
		t.Fatalf("expected 'hello', got %q", string(data[6:11]))
	}
}

func TestCompoundList(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Compound("")
	w.List("Sections", TagCompound, 1)
	w.Byte("Y", 3)
	w.End()
	w.End()

	want := []byte{
		TagCompound, 0, 0,
		TagList, 0, 8, 'S', 'e', 'c', 't', 'i', 'o', 'n', 's',
		TagCompound, 0, 0, 0, 1,
		// List elements carry no type or name.
		TagByte, 0, 1, 'Y', 3,
		TagEnd,
		TagEnd,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x\nwant % x", buf.Bytes(), want)
	}
}

type failWriter struct{ calls int }

func (f *failWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestWriterKeepsFirstError(t *testing.T) {
	fw := &failWriter{}
	w := NewWriter(fw)
	w.Int("a", 1)
	w.Int("b", 2)

	if w.Err() == nil {
		t.Fatal("expected error, got nil")
	}
	if fw.calls != 1 {
		t.Fatalf("expected writes to stop after the first error, got %d calls", fw.calls)
	}
}
