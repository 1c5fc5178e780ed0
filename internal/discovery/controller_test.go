package discovery

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestControllerString(t *testing.T) {
	c := &Controller{
		Serial:   "100407188",
		Hostname: "luxtronik100407188.local",
		IP:       "192.168.1.40",
		Port:     8889,
	}

	want := "Luxtronik 100407188 (luxtronik100407188.local) at 192.168.1.40:8889"
	if c.String() != want {
		t.Errorf("String() = %v, want %v", c.String(), want)
	}
	if c.Addr() != "192.168.1.40:8889" {
		t.Errorf("Addr() = %v, want 192.168.1.40:8889", c.Addr())
	}
}

func TestControllerGetMetadata(t *testing.T) {
	c := &Controller{
		Metadata: map[string]string{"firmware": "V3.85.4"},
	}
	if got := c.GetMetadata("firmware"); got != "V3.85.4" {
		t.Errorf("GetMetadata(firmware) = %v, want V3.85.4", got)
	}
	if got := c.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %v, want empty", got)
	}

	var empty Controller
	if got := empty.GetMetadata("firmware"); got != "" {
		t.Errorf("GetMetadata on nil map = %v, want empty", got)
	}
}

func TestParseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name     string
		hostname string
		ipv4     []net.IP
		port     int
		txt      []string
		want     bool
		serial   string
	}{
		{
			name:     "valid controller entry",
			hostname: "luxtronik100407188.local.",
			ipv4:     []net.IP{net.ParseIP("192.168.1.40")},
			port:     8889,
			txt:      []string{"firmware=V3.85.4", "standalone"},
			want:     true,
			serial:   "100407188",
		},
		{
			name:     "hostname does not match",
			hostname: "printer.local.",
			ipv4:     []net.IP{net.ParseIP("192.168.1.50")},
			port:     9100,
			want:     false,
		},
		{
			name:     "no address",
			hostname: "luxtronik100407188.local.",
			want:     false,
		},
		{
			name:     "zero port defaults to 8889",
			hostname: "Luxtronik100407188.local",
			ipv4:     []net.IP{net.ParseIP("192.168.1.40")},
			want:     true,
			serial:   "100407188",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &zeroconf.ServiceEntry{
				HostName: tt.hostname,
				AddrIPv4: tt.ipv4,
				Port:     tt.port,
				Text:     tt.txt,
			}

			c := scanner.parseServiceEntry(entry)
			if !tt.want {
				if c != nil {
					t.Fatalf("parseServiceEntry() = %v, want nil", c)
				}
				return
			}
			if c == nil {
				t.Fatal("parseServiceEntry() = nil, want controller")
			}
			if c.Serial != tt.serial {
				t.Errorf("Serial = %v, want %v", c.Serial, tt.serial)
			}
			if tt.port == 0 && c.Port != DefaultPort {
				t.Errorf("Port = %d, want default %d", c.Port, DefaultPort)
			}
			if len(tt.txt) > 0 {
				if c.GetMetadata("firmware") != "V3.85.4" {
					t.Errorf("firmware metadata = %v", c.GetMetadata("firmware"))
				}
				if _, ok := c.Metadata["standalone"]; !ok {
					t.Error("bare TXT key should be present with empty value")
				}
			}
		})
	}
}
