// Package heatpump holds the semantic layer above the wire protocol: the
// parameter, calculation, and visibility vectors the controller exposes as
// flat integer arrays, plus the pending-write queue.
//
// The controller itself only speaks indices and raw integers. This package
// maps well-known indices to names, units, and scaling, and enforces the
// safe-write policy (by default only parameters known to be safe may be
// queued for writing). Unknown indices are still retained and addressable,
// they just get generated Unknown_* names.
//
// # Write Queue
//
// Parameters owns an ordered write queue of index→value entries with
// last-write-wins semantics. The session drains it during a write cycle and
// clears it unconditionally afterwards; no other component holds a reference
// to it.
package heatpump
