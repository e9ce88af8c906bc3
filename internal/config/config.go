// Package config provides types for handling configuration parameters.
package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config defines default control-server constants and parameters and
// overwrites them with environment variables.
type Config struct {
	// ControlAddr is the HTTP listen address, all interfaces.
	ControlAddr string `env:"CONTROL_ADDR" envDefault:":6090"`

	// Display selects the X display the kiosk browser renders on. It is
	// injected into the window querier and never exported process-wide.
	Display string `env:"CONTROL_DISPLAY" envDefault:":99"`

	// HandoffPath is the scratch file the external restart loop reads the
	// next target URL from.
	HandoffPath string `env:"CONTROL_HANDOFF_PATH" envDefault:"/tmp/chrome-url.txt"`

	// WindowClass is the class filter passed to the window-query tool.
	WindowClass string `env:"CONTROL_WINDOW_CLASS" envDefault:"chromium"`

	// KillPattern is the process-name pattern the terminate signal targets.
	KillPattern string `env:"CONTROL_KILL_PATTERN" envDefault:"chrome"`

	// ToolTimeout bounds each external tool invocation independently.
	ToolTimeout time.Duration `env:"CONTROL_TOOL_TIMEOUT" envDefault:"2s"`

	// HistoryPath is the sqlite navigation journal. Empty disables journaling.
	HistoryPath string `env:"CONTROL_HISTORY_PATH" envDefault:""`
}

// New sets up a configuration from the environment.
func New() (*Config, error) {
	cfg := Config{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseFlags parses command line arguments and stores them.
// Environment values act as flag defaults.
func (c *Config) ParseFlags() {
	flag.StringVar(&c.ControlAddr, "a", c.ControlAddr, "Listen address")
	flag.StringVar(&c.Display, "d", c.Display, "X display target")
	flag.StringVar(&c.HandoffPath, "f", c.HandoffPath, "Handoff file path")
	flag.StringVar(&c.WindowClass, "c", c.WindowClass, "Browser window class")
	flag.StringVar(&c.KillPattern, "k", c.KillPattern, "Browser process pattern")
	flag.StringVar(&c.HistoryPath, "j", c.HistoryPath, "Navigation journal path (empty disables)")
	flag.DurationVar(&c.ToolTimeout, "t", c.ToolTimeout, "External tool timeout")
	flag.Parse()
}
