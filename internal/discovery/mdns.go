package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type Luxtronik controllers advertise
	ServiceType = "_luxtronik._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for controller discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default control port for Luxtronik controllers
	DefaultPort = 8889
)

// serialPattern matches Luxtronik controller hostnames (e.g., "luxtronik100407188.local")
var serialPattern = regexp.MustCompile(`^(?i)luxtronik(\d+)\.local\.?$`)

// Scanner handles mDNS controller discovery
type Scanner struct {
	// Timeout is the maximum time to wait for controller discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers all Luxtronik controllers on the local network.
func (s *Scanner) Scan() ([]*Controller, error) {
	return s.ScanWithContext(context.Background())
}

// ScanWithContext discovers controllers with a custom context.
func (s *Scanner) ScanWithContext(ctx context.Context) ([]*Controller, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	controllers := make([]*Controller, 0)
	done := make(chan struct{})

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		defer close(done)
		for entry := range entries {
			if c := s.parseServiceEntry(entry); c != nil {
				controllers = append(controllers, c)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for the browse to finish (timeout or cancellation) and the
	// collector to drain the entry channel.
	<-ctx.Done()
	<-done

	return controllers, nil
}

// parseServiceEntry converts a zeroconf service entry to a Controller.
// Returns nil if the entry is not a Luxtronik controller.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Controller {
	hostname := entry.HostName
	if hostname == "" {
		return nil
	}

	matches := serialPattern.FindStringSubmatch(hostname)
	if len(matches) < 2 {
		return nil
	}
	serial := matches[1]

	// Prefer IPv4; controllers rarely advertise usable IPv6
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Controller{
		Serial:       serial,
		Hostname:     hostname,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Scan is a convenience function to scan for controllers with a custom timeout
func Scan(timeout time.Duration) ([]*Controller, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.Scan()
}
