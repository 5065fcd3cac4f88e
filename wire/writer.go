package wire

import (
	"bytes"
	"encoding/binary"
)

// writer appends little-endian fields to a growing buffer
type writer struct {
	buf bytes.Buffer
}

func (w *writer) uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) int32(v int32) {
	w.uint32(uint32(v))
}

func (w *writer) uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) raw(b []byte) {
	w.buf.Write(b)
}

// sized writes a 4 byte length prefix followed by b
func (w *writer) sized(b []byte) {
	w.uint32(uint32(len(b)))
	w.buf.Write(b)
}

func (w *writer) string(s string) {
	w.sized([]byte(s))
}

func (w *writer) bytes() []byte {
	return w.buf.Bytes()
}

// nested runs fn against a fresh writer and writes its output with a length prefix
func (w *writer) nested(fn func(*writer) error) error {
	inner := &writer{}
	if err := fn(inner); err != nil {
		return err
	}
	w.sized(inner.bytes())
	return nil
}
