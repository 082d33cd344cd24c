// Package ebl generates electron-beam lithography fiducials: mark
// lattices the EBL writer registers against, and the corner, Nabity and
// dose marks placed on optical masks so that EBL and optical layers line
// up.
//
// Generators return references or arrays so that a single mark cell is
// shared across every placement and expanded only on flatten or export.
package ebl
