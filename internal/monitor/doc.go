// Package monitor implements the live terminal dashboard behind
// "luxctl monitor".
//
// The dashboard connects to one controller, performs a read cycle on a
// fixed interval, and renders the calculation vector in a scrollable table.
// A spinner is shown while the first cycle is in flight; subsequent cycles
// refresh in place. Quit with q or ctrl+c.
package monitor
