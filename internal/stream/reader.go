package stream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrTruncated is returned when the input ends inside a record.
var ErrTruncated = errors.New("stream: truncated record")

// Reader decodes records from an underlying byte stream.
type Reader struct {
	r      *bufio.Reader
	offset int64
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Offset returns the byte offset of the next record.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Next returns the next record. It returns io.EOF when the input ends
// cleanly on a record boundary. Some writers pad files to a block size
// with zero bytes after ENDLIB; a zero-length header is reported as
// io.EOF as well.
func (r *Reader) Next() (Record, error) {
	var hdr [headerSize]byte
	n, err := io.ReadFull(r.r, hdr[:])
	switch {
	case err == io.EOF:
		return Record{}, io.EOF
	case err != nil:
		return Record{}, fmt.Errorf("%w at offset %d (%d header bytes)", ErrTruncated, r.offset, n)
	}
	length := int(binary.BigEndian.Uint16(hdr[:2]))
	if length == 0 {
		return Record{}, io.EOF
	}
	if length < headerSize || length%2 != 0 {
		return Record{}, fmt.Errorf("%w: bad record length %d at offset %d", ErrPayload, length, r.offset)
	}
	rec := Record{
		Type:    RecordType(hdr[2]),
		Data:    DataType(hdr[3]),
		Payload: make([]byte, length-headerSize),
	}
	if _, err := io.ReadFull(r.r, rec.Payload); err != nil {
		return Record{}, fmt.Errorf("%w: %v at offset %d", ErrTruncated, rec.Type, r.offset)
	}
	r.offset += int64(length)
	return rec, nil
}
