package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// RecordType identifies a GDSII record.
type RecordType uint8

// Record types used by the gds package. Values follow the GDSII
// Stream Format Manual, release 6.0.
const (
	Header       RecordType = 0x00
	BgnLib       RecordType = 0x01
	LibName      RecordType = 0x02
	Units        RecordType = 0x03
	EndLib       RecordType = 0x04
	BgnStr       RecordType = 0x05
	StrName      RecordType = 0x06
	EndStr       RecordType = 0x07
	Boundary     RecordType = 0x08
	Path         RecordType = 0x09
	SRef         RecordType = 0x0A
	ARef         RecordType = 0x0B
	Text         RecordType = 0x0C
	Layer        RecordType = 0x0D
	Datatype     RecordType = 0x0E
	Width        RecordType = 0x0F
	XY           RecordType = 0x10
	EndEl        RecordType = 0x11
	SName        RecordType = 0x12
	ColRow       RecordType = 0x13
	Node         RecordType = 0x15
	TextType     RecordType = 0x16
	Presentation RecordType = 0x17
	String       RecordType = 0x19
	STrans       RecordType = 0x1A
	Mag          RecordType = 0x1B
	Angle        RecordType = 0x1C
	RefLibs      RecordType = 0x1F
	Fonts        RecordType = 0x20
	PathType     RecordType = 0x21
	Generations  RecordType = 0x22
	AttrTable    RecordType = 0x23
	ElFlags      RecordType = 0x26
	NodeType     RecordType = 0x2A
	PropAttr     RecordType = 0x2B
	PropValue    RecordType = 0x2C
	Box          RecordType = 0x2D
	BoxType      RecordType = 0x2E
	Plex         RecordType = 0x2F
	BgnExtn      RecordType = 0x30
	EndExtn      RecordType = 0x31
	Format       RecordType = 0x36
)

var recordNames = map[RecordType]string{
	Header: "HEADER", BgnLib: "BGNLIB", LibName: "LIBNAME", Units: "UNITS",
	EndLib: "ENDLIB", BgnStr: "BGNSTR", StrName: "STRNAME", EndStr: "ENDSTR",
	Boundary: "BOUNDARY", Path: "PATH", SRef: "SREF", ARef: "AREF",
	Text: "TEXT", Layer: "LAYER", Datatype: "DATATYPE", Width: "WIDTH",
	XY: "XY", EndEl: "ENDEL", SName: "SNAME", ColRow: "COLROW",
	Node: "NODE", TextType: "TEXTTYPE", Presentation: "PRESENTATION",
	String: "STRING", STrans: "STRANS", Mag: "MAG", Angle: "ANGLE",
	RefLibs: "REFLIBS", Fonts: "FONTS", PathType: "PATHTYPE",
	Generations: "GENERATIONS", AttrTable: "ATTRTABLE", ElFlags: "ELFLAGS",
	NodeType: "NODETYPE", PropAttr: "PROPATTR", PropValue: "PROPVALUE",
	Box: "BOX", BoxType: "BOXTYPE", Plex: "PLEX", BgnExtn: "BGNEXTN",
	EndExtn: "ENDEXTN", Format: "FORMAT",
}

// String returns the record name used in the GDSII manual.
func (t RecordType) String() string {
	if name, ok := recordNames[t]; ok {
		return name
	}
	return fmt.Sprintf("RecordType(0x%02X)", uint8(t))
}

// DataType identifies the payload encoding of a record.
type DataType uint8

// Payload encodings.
const (
	NoData   DataType = 0
	BitArray DataType = 1
	Int16    DataType = 2
	Int32    DataType = 3
	Real4    DataType = 4
	Real8    DataType = 5
	ASCII    DataType = 6
)

// STRANS flag bits.
const (
	STransReflection  uint16 = 0x8000
	STransAbsoluteMag uint16 = 0x0004
	STransAbsoluteAng uint16 = 0x0002
)

// headerSize is the size of the length/type/datatype prefix.
const headerSize = 4

// MaxPayload is the largest payload a single record can carry.
const MaxPayload = 0xFFFF - headerSize

// ErrPayload is returned when a payload does not match its data type.
var ErrPayload = errors.New("stream: malformed record payload")

// Record is a single decoded GDSII record.
type Record struct {
	Type    RecordType
	Data    DataType
	Payload []byte
}

func (r Record) expect(dt DataType, width int) error {
	if r.Data != dt {
		return fmt.Errorf("%w: %v has data type %d, want %d", ErrPayload, r.Type, r.Data, dt)
	}
	if width > 0 && len(r.Payload)%width != 0 {
		return fmt.Errorf("%w: %v payload length %d", ErrPayload, r.Type, len(r.Payload))
	}
	return nil
}

// Int16s decodes a two-byte signed integer payload.
func (r Record) Int16s() ([]int16, error) {
	if err := r.expect(Int16, 2); err != nil {
		return nil, err
	}
	out := make([]int16, len(r.Payload)/2)
	for i := range out {
		out[i] = int16(binary.BigEndian.Uint16(r.Payload[2*i:]))
	}
	return out, nil
}

// Int32s decodes a four-byte signed integer payload.
func (r Record) Int32s() ([]int32, error) {
	if err := r.expect(Int32, 4); err != nil {
		return nil, err
	}
	out := make([]int32, len(r.Payload)/4)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(r.Payload[4*i:]))
	}
	return out, nil
}

// Real8s decodes an eight-byte real payload.
func (r Record) Real8s() ([]float64, error) {
	if err := r.expect(Real8, 8); err != nil {
		return nil, err
	}
	out := make([]float64, len(r.Payload)/8)
	for i := range out {
		out[i] = DecodeReal8(binary.BigEndian.Uint64(r.Payload[8*i:]))
	}
	return out, nil
}

// Bits decodes a bit array payload.
func (r Record) Bits() (uint16, error) {
	if err := r.expect(BitArray, 2); err != nil {
		return 0, err
	}
	if len(r.Payload) != 2 {
		return 0, fmt.Errorf("%w: %v payload length %d", ErrPayload, r.Type, len(r.Payload))
	}
	return binary.BigEndian.Uint16(r.Payload), nil
}

// Text decodes an ASCII payload, dropping NUL padding.
func (r Record) Text() (string, error) {
	if err := r.expect(ASCII, 0); err != nil {
		return "", err
	}
	return strings.TrimRight(string(r.Payload), "\x00"), nil
}
