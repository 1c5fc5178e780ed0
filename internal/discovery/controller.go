package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Controller represents a discovered Luxtronik controller on the network.
type Controller struct {
	// Serial is the controller serial number (e.g., "100407188")
	Serial string

	// Hostname is the mDNS hostname (e.g., "luxtronik100407188.local")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.40")
	IP string

	// Port is the control TCP port (typically 8889)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "firmware=V3.85.4", "model=WWB21"
	Metadata map[string]string

	// DiscoveredAt is when the controller was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the controller
func (c *Controller) String() string {
	return fmt.Sprintf("Luxtronik %s (%s) at %s:%d", c.Serial, c.Hostname, c.IP, c.Port)
}

// Addr returns the host:port address ready for dialing.
func (c *Controller) Addr() string {
	return net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (c *Controller) GetMetadata(key string) string {
	if c.Metadata == nil {
		return ""
	}
	return c.Metadata[key]
}
