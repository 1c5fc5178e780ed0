// Package session owns the single TCP connection to a Luxtronik controller
// and sequences every exchange on it.
//
// A Session holds at most one live connection, the parameter and calculation
// sinks, and one mutex guarding whole read-after-write cycles. The controller
// does not tolerate interleaved command sequences, so the mutex is held from
// cycle entry through the settle delay to the last array read, and is
// released via defer on every exit path.
//
// # Cycles
//
// Read performs a read-only cycle: parameters (3003) then calculations
// (3004), always in that order. Write drains the pending parameter writes
// first (one 3002 round-trip per entry), waits a fixed settle delay so the
// controller can recompute derived values, then performs the same two reads.
//
// The session never retries or reconnects. Any I/O failure propagates to the
// caller unchanged, and a cancelled cycle leaves the protocol state
// indeterminate; callers should Close and reopen after cancellation.
package session
