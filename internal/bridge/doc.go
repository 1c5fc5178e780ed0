// Package bridge exposes heat-pump readings to local consumers over HTTP.
//
// The bridge polls a controller session on a fixed interval and keeps the
// latest snapshot of parameters and calculations. Consumers can fetch it
// once via GET /snapshot or subscribe to /ws, a WebSocket endpoint that
// pushes a JSON snapshot after every successful poll. This is the
// integration surface for home-automation systems that cannot speak the
// controller's binary protocol themselves.
//
// The bridge holds the only reference to the session; all controller I/O
// stays serialized through the session's own cycle lock.
package bridge
