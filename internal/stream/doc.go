// Package stream reads and writes GDSII stream format records.
//
// A GDSII file is a flat sequence of records. Each record starts with a
// four byte header: a big-endian uint16 total length (header included),
// a record type byte and a data type byte. Payloads are big-endian
// int16/int32 arrays, 8-byte excess-64 base-16 reals, bit arrays or
// NUL-padded ASCII strings.
//
// The package knows nothing about cells or polygons; the gds package
// builds its layout model on top of the record stream.
package stream
