package stream

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer encodes records. Errors are sticky: after the first failure
// every call is a no-op and Flush returns that error.
type Writer struct {
	w   *bufio.Writer
	n   int64
	err error
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Count returns the number of bytes written so far.
func (w *Writer) Count() int64 {
	return w.n
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Flush writes buffered data and returns the first error encountered.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

func (w *Writer) record(t RecordType, dt DataType, payload []byte) {
	if w.err != nil {
		return
	}
	if len(payload) > MaxPayload {
		w.err = fmt.Errorf("%w: %v payload of %d bytes exceeds %d", ErrPayload, t, len(payload), MaxPayload)
		return
	}
	var hdr [headerSize]byte
	binary.BigEndian.PutUint16(hdr[:2], uint16(len(payload)+headerSize))
	hdr[2] = byte(t)
	hdr[3] = byte(dt)
	if _, err := w.w.Write(hdr[:]); err != nil {
		w.err = err
		return
	}
	if _, err := w.w.Write(payload); err != nil {
		w.err = err
		return
	}
	w.n += int64(len(payload) + headerSize)
}

// Empty writes a record without payload (ENDEL, ENDSTR, BOUNDARY, ...).
func (w *Writer) Empty(t RecordType) {
	w.record(t, NoData, nil)
}

// Int16s writes a two-byte integer record.
func (w *Writer) Int16s(t RecordType, vals ...int16) {
	buf := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(buf[2*i:], uint16(v))
	}
	w.record(t, Int16, buf)
}

// Int32s writes a four-byte integer record.
func (w *Writer) Int32s(t RecordType, vals ...int32) {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(v))
	}
	w.record(t, Int32, buf)
}

// Real8s writes an eight-byte real record.
func (w *Writer) Real8s(t RecordType, vals ...float64) {
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint64(buf[8*i:], EncodeReal8(v))
	}
	w.record(t, Real8, buf)
}

// Bits writes a bit array record.
func (w *Writer) Bits(t RecordType, v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.record(t, BitArray, buf[:])
}

// ASCII writes a string record, NUL-padded to an even length.
func (w *Writer) ASCII(t RecordType, s string) {
	buf := []byte(s)
	if len(buf)%2 != 0 {
		buf = append(buf, 0)
	}
	w.record(t, ASCII, buf)
}
