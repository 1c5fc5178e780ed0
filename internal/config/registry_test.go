package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}
	if !strings.Contains(configDir, "luxctl") {
		t.Errorf("GetConfigDir() = %v, should contain 'luxctl'", configDir)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Controllers == nil {
		t.Error("NewRegistry().Controllers should be initialized")
	}
	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should be initialized")
	}
	if reg.Preferences.PollInterval != defaultPollInterval {
		t.Errorf("PollInterval = %d, want %d", reg.Preferences.PollInterval, defaultPollInterval)
	}
}

func TestControllerSafeWrites(t *testing.T) {
	onValue := true
	offValue := false

	tests := []struct {
		name string
		safe *bool
		want bool
	}{
		{name: "unset defaults to safe", safe: nil, want: true},
		{name: "explicitly on", safe: &onValue, want: true},
		{name: "explicitly off", safe: &offValue, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Controller{Host: "192.168.1.40", Safe: tt.safe}
			if got := c.SafeWrites(); got != tt.want {
				t.Errorf("SafeWrites() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	reg := NewRegistry()
	off := false
	reg.Controllers["cellar"] = &Controller{Host: "192.168.1.40", Port: 8889, Safe: &off}

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Registry
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	c := got.Resolve("cellar")
	if c == nil {
		t.Fatal("Resolve(cellar) = nil")
	}
	if c.Host != "192.168.1.40" || c.Port != 8889 {
		t.Errorf("controller = %+v", c)
	}
	if c.SafeWrites() {
		t.Error("SafeWrites() = true, want false after round trip")
	}
	if got.Resolve("attic") != nil {
		t.Error("Resolve(attic) should be nil")
	}
}

func TestAddRemoveController(t *testing.T) {
	reg := &Registry{Version: 1}

	reg.AddController("cellar", &Controller{Host: "192.168.1.40", Port: 8889})
	if reg.Resolve("cellar") == nil {
		t.Fatal("Resolve(cellar) = nil after AddController")
	}

	// Adding under the same name replaces the entry
	reg.AddController("cellar", &Controller{Host: "192.168.1.41"})
	if got := reg.Resolve("cellar").Host; got != "192.168.1.41" {
		t.Errorf("Host after replace = %q, want 192.168.1.41", got)
	}

	if !reg.RemoveController("cellar") {
		t.Error("RemoveController(cellar) = false, want true")
	}
	if reg.Resolve("cellar") != nil {
		t.Error("Resolve(cellar) should be nil after RemoveController")
	}
	if reg.RemoveController("cellar") {
		t.Error("RemoveController(cellar) = true on absent entry")
	}
}

func TestTouchSetsLastSeen(t *testing.T) {
	reg := NewRegistry()
	reg.AddController("cellar", &Controller{Host: "192.168.1.40"})

	before := time.Now()
	if !reg.Touch("cellar") {
		t.Fatal("Touch(cellar) = false, want true")
	}
	seen := reg.Resolve("cellar").LastSeen
	if seen.Before(before) || seen.After(time.Now()) {
		t.Errorf("LastSeen = %v, want between %v and now", seen, before)
	}

	if reg.Touch("attic") {
		t.Error("Touch(attic) = true on unregistered name")
	}
}
