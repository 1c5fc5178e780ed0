// Package discovery finds Luxtronik controllers on the local network via
// mDNS/DNS-SD.
//
// Controllers (and the gateways that front older units) advertise a
// _luxtronik._tcp service whose TXT records carry the serial number and
// firmware version. Discovery browses for that service, filters entries by
// hostname pattern, and returns the controller addresses ready to dial.
package discovery
