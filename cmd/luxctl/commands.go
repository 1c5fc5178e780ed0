package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/luxctl/internal/bridge"
	"github.com/muurk/luxctl/internal/config"
	"github.com/muurk/luxctl/internal/discovery"
	"github.com/muurk/luxctl/internal/heatpump"
	"github.com/muurk/luxctl/internal/logging"
	"github.com/muurk/luxctl/internal/monitor"
	"github.com/muurk/luxctl/internal/session"
)

// Connection flags shared by commands that talk to a controller
var (
	hostFlag       string
	portFlag       int
	controllerFlag string
	unsafeFlag     bool
	strictFlag     bool
	formatFlag     string

	scanTimeout     int
	listenFlag      string
	serveInterval   int
	monitorInterval int
	withVis         bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Controller hostname or IP")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", session.DefaultPort, "Controller TCP port")
	rootCmd.PersistentFlags().StringVar(&controllerFlag, "controller", "", "Named controller from the config file (alternative to --host)")
	rootCmd.PersistentFlags().BoolVar(&unsafeFlag, "unsafe", false, "Allow writes to parameters not whitelisted as safe")
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "Treat mismatched command echoes as protocol errors")

	readCmd.Flags().StringVar(&formatFlag, "format", "auto", "Output format (detailed, json, auto)")
	readCmd.Flags().BoolVar(&withVis, "visibilities", false, "Also read the visibility flags")
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
	serveCmd.Flags().StringVar(&listenFlag, "listen", "127.0.0.1:8898", "Bridge listen address")
	serveCmd.Flags().IntVar(&serveInterval, "interval", 30, "Poll interval in seconds")
	monitorCmd.Flags().IntVar(&monitorInterval, "interval", 10, "Refresh interval in seconds")

	controllerCmd.AddCommand(controllerAddCmd)
	controllerCmd.AddCommand(controllerRemoveCmd)
	controllerCmd.AddCommand(controllerListCmd)

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(controllerCmd)
}

// loadPreferences returns the config preferences, or nil when the config
// file is missing or unreadable; flag defaults apply in that case.
func loadPreferences() *config.Preferences {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil
	}
	return registry.Preferences
}

// resolveSeconds picks the effective value for a seconds flag: the flag when
// given on the command line, otherwise the config preference when positive,
// otherwise the flag default.
func resolveSeconds(cmd *cobra.Command, flag string, flagValue, pref int) int {
	if cmd.Flags().Changed(flag) || pref <= 0 {
		return flagValue
	}
	return pref
}

// markControllerSeen records a successful exchange on the named controller's
// config entry. Best effort: a stale LastSeen is not worth failing the
// command over.
func markControllerSeen() {
	if controllerFlag == "" {
		return
	}
	registry, err := config.LoadRegistry()
	if err != nil {
		return
	}
	if registry.Touch(controllerFlag) {
		if err := registry.Save(); err != nil {
			logging.Warn("Failed to save config", zap.Error(err))
		}
	}
}

// newSession builds a session from --controller / --host flags. The named
// controller's safe setting applies unless --unsafe overrides it.
func newSession() (*session.Session, error) {
	host := hostFlag
	port := portFlag
	safe := !unsafeFlag

	if controllerFlag != "" {
		registry, err := config.LoadRegistry()
		if err != nil {
			return nil, err
		}
		c := registry.Resolve(controllerFlag)
		if c == nil {
			return nil, fmt.Errorf("controller %q is not in the config file", controllerFlag)
		}
		host = c.Host
		if c.Port != 0 {
			port = c.Port
		}
		if !c.SafeWrites() {
			safe = false
		}
	}

	if host == "" {
		return nil, fmt.Errorf("no controller given: use --host or --controller")
	}

	opts := []session.Option{session.WithPort(port)}
	if !safe {
		opts = append(opts, session.WithUnsafeWrites())
	}
	if strictFlag {
		opts = append(opts, session.WithStrictEcho())
	}
	return session.New(host, opts...), nil
}

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read all parameters and calculations from a controller",
	Example: `  # Read from a controller by address
  luxctl read --host 192.168.1.40

  # Read from a named controller, machine-readable output
  luxctl read --controller cellar --format json`,
	RunE: runRead,
}

func runRead(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	if err := s.Connect(cmd.Context()); err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Read(cmd.Context()); err != nil {
		return err
	}
	if withVis {
		if err := s.ReadVisibilities(cmd.Context()); err != nil {
			return err
		}
	}

	markControllerSeen()

	switch resolveFormat() {
	case "json":
		return printJSON(s)
	default:
		printDetailed(s)
		return nil
	}
}

// resolveFormat maps "auto" to detailed on a terminal and json when output
// is piped.
func resolveFormat() string {
	if formatFlag != "auto" {
		return formatFlag
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "detailed"
	}
	return "json"
}

func printDetailed(s *session.Session) {
	fmt.Printf("Controller %s\n\n", s.Addr())
	fmt.Printf("Calculations (%d):\n", s.Calculations.Len())
	for _, v := range s.Calculations.All() {
		fmt.Printf("  %4d  %s\n", v.Index, v)
	}
	fmt.Printf("\nParameters (%d):\n", s.Parameters.Len())
	for _, v := range s.Parameters.All() {
		fmt.Printf("  %4d  %s\n", v.Index, v)
	}
	if s.Visibilities.Len() > 0 {
		fmt.Printf("\nVisibilities: %d flags\n", s.Visibilities.Len())
	}
}

func printJSON(s *session.Session) error {
	out := struct {
		Source       string           `json:"source"`
		Parameters   []heatpump.Value `json:"parameters"`
		Calculations []heatpump.Value `json:"calculations"`
	}{
		Source:       s.Addr(),
		Parameters:   s.Parameters.All(),
		Calculations: s.Calculations.All(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

var setCmd = &cobra.Command{
	Use:   "set <parameter> <value>",
	Short: "Write one parameter and read back the result",
	Long: `Write one parameter to the controller.

The parameter may be given as a numeric index or a well-known name
(e.g. ID_Einst_BWS_akt). The value is the raw controller integer;
temperatures are tenths of a degree. The write is queued, flushed in
one write cycle, and the refreshed value is read back and printed.

By default only parameters whitelisted as safe may be written; pass
--unsafe to lift that to all writeable parameters.`,
	Example: `  # Set hot water target to 48.0 °C
  luxctl set ID_Einst_BWS_akt 480 --host 192.168.1.40`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		var ok bool
		index, ok = heatpump.IndexOf(args[0])
		if !ok {
			return fmt.Errorf("unknown parameter %q", args[0])
		}
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("value %q is not an integer", args[1])
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	if err := s.Parameters.Queue(index, value); err != nil {
		return err
	}

	if err := s.Connect(cmd.Context()); err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Write(cmd.Context()); err != nil {
		return err
	}
	markControllerSeen()

	if v, ok := s.Parameters.Get(index); ok {
		fmt.Printf("Parameter %d written; controller now reports %s\n", index, v)
	} else {
		fmt.Printf("Parameter %d written\n", index)
	}
	return nil
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch controller values live in a terminal dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.Connect(cmd.Context()); err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		interval := monitorInterval
		if prefs := loadPreferences(); prefs != nil {
			interval = resolveSeconds(cmd, "interval", monitorInterval, prefs.PollInterval)
		}
		return monitor.Run(s, time.Duration(interval)*time.Second)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for Luxtronik controllers on the network",
	Long: `Scan for Luxtronik controllers using mDNS/DNS-SD discovery.

Controllers that advertise the _luxtronik._tcp service are listed with
their IP addresses, serial numbers, and TXT metadata.`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	timeout := scanTimeout
	if prefs := loadPreferences(); prefs != nil {
		timeout = resolveSeconds(cmd, "timeout", scanTimeout, prefs.DiscoverTimeout)
	}
	fmt.Printf("Scanning for Luxtronik controllers (timeout: %ds)...\n\n", timeout)

	controllers, err := discovery.Scan(time.Duration(timeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(controllers) == 0 {
		fmt.Println("No controllers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the controller is powered on and on this network")
		fmt.Println("  - Older units do not advertise mDNS; use --host directly")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Printf("Found %d controller(s):\n\n", len(controllers))
	for i, c := range controllers {
		fmt.Printf("%d. %s\n", i+1, c.Hostname)
		fmt.Printf("   Serial:  %s\n", c.Serial)
		fmt.Printf("   Address: %s\n", c.Addr())
		if len(c.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", c.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'luxctl read --host <ip>' to read a controller")
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll a controller and serve readings over HTTP/WebSocket",
	Long: `Run the home-automation bridge.

The bridge polls the controller on a fixed interval and serves the
latest readings as JSON on GET /snapshot, plus a WebSocket push feed
on /ws that delivers a snapshot after every successful poll.`,
	Example: `  luxctl serve --controller cellar --listen 0.0.0.0:8898 --interval 60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.Connect(cmd.Context()); err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		interval := serveInterval
		if prefs := loadPreferences(); prefs != nil {
			interval = resolveSeconds(cmd, "interval", serveInterval, prefs.PollInterval)
		}
		b := bridge.New(
			&bridge.SessionPoller{Session: s},
			time.Duration(interval)*time.Second,
		)
		return b.Run(cmd.Context(), listenFlag)
	},
}

var controllerCmd = &cobra.Command{
	Use:   "controller",
	Short: "Manage named controllers in the config file",
}

var controllerAddCmd = &cobra.Command{
	Use:   "add <name> <host>",
	Short: "Add or update a named controller",
	Example: `  luxctl controller add cellar 192.168.1.40
  luxctl controller add attic luxtronik2.local --port 8889 --unsafe`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		c := &config.Controller{Host: args[1], Port: portFlag}
		if unsafeFlag {
			safe := false
			c.Safe = &safe
		}
		registry.AddController(args[0], c)
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Printf("Controller %q saved (%s:%d)\n", args[0], c.Host, c.Port)
		return nil
	},
}

var controllerRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a named controller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if !registry.RemoveController(args[0]) {
			return fmt.Errorf("controller %q is not in the config file", args[0])
		}
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Printf("Controller %q removed\n", args[0])
		return nil
	},
}

var controllerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List named controllers",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if len(registry.Controllers) == 0 {
			fmt.Println("No controllers configured. Add one with 'luxctl controller add'.")
			return nil
		}
		names := make([]string, 0, len(registry.Controllers))
		for name := range registry.Controllers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := registry.Controllers[name]
			line := fmt.Sprintf("%-16s %s:%d", name, c.Host, c.Port)
			if !c.SafeWrites() {
				line += "  (unsafe writes)"
			}
			if !c.LastSeen.IsZero() {
				line += fmt.Sprintf("  last seen %s", c.LastSeen.Format(time.RFC3339))
			}
			fmt.Println(line)
		}
		return nil
	},
}
