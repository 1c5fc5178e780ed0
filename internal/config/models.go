package config

import "time"

// Registry represents the entire user configuration file.
// It stores named controllers and application preferences.
type Registry struct {
	Version     int                    `yaml:"version"`
	Controllers map[string]*Controller `yaml:"controllers,omitempty"` // Keyed by user-chosen name
	Preferences *Preferences           `yaml:"preferences,omitempty"`
}

// Controller is one configured Luxtronik controller.
type Controller struct {
	Host     string    `yaml:"host"`                // Hostname or IP
	Port     int       `yaml:"port,omitempty"`      // TCP port (default 8889)
	Safe     *bool     `yaml:"safe,omitempty"`      // Safe-write mode; nil means on
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last successful read
}

// SafeWrites reports whether safe-write mode is enabled for the controller.
// Unset means on; turning it off is an explicit opt-in.
func (c *Controller) SafeWrites() bool {
	return c.Safe == nil || *c.Safe
}

// Preferences represents application-wide user preferences. They act as
// defaults for the corresponding command flags; an explicit flag always
// wins.
type Preferences struct {
	PollInterval    int `yaml:"poll_interval"`    // Bridge/monitor poll interval in seconds
	DiscoverTimeout int `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
}

// AddController registers or replaces a named controller.
func (r *Registry) AddController(name string, c *Controller) {
	if r.Controllers == nil {
		r.Controllers = make(map[string]*Controller)
	}
	r.Controllers[name] = c
}

// RemoveController deletes the named controller, reporting whether it
// existed.
func (r *Registry) RemoveController(name string) bool {
	_, ok := r.Controllers[name]
	delete(r.Controllers, name)
	return ok
}

// Touch records a successful exchange with the named controller, reporting
// whether the name is registered. Callers persist the change with Save.
func (r *Registry) Touch(name string) bool {
	c, ok := r.Controllers[name]
	if !ok {
		return false
	}
	c.LastSeen = time.Now()
	return true
}
