// Package config provides user configuration management for luxctl.
//
// This package manages a YAML-based configuration file that stores named
// heat-pump controllers (host, port, safe-write mode) and application
// preferences such as poll intervals. The configuration follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/luxctl/config.yaml or $HOME/.config/luxctl/config.yaml
//   - macOS: $HOME/.config/luxctl/config.yaml
//   - Windows: %LOCALAPPDATA%\luxctl\config.yaml
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry.AddController("cellar", &config.Controller{
//	    Host: "192.168.1.40",
//	    Port: 8889,
//	})
//
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// Safe-write mode is on unless a controller sets `safe: false` explicitly;
// see Controller.SafeWrites.
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
