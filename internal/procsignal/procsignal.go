// Package procsignal sends terminate signals to processes by name pattern.
package procsignal

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/raysh454/browserctl/internal/logging"
)

// Config contains runtime options for the process signaler.
type Config struct {
	// Timeout bounds a single signal invocation.
	Timeout time.Duration

	// Tool is the process-signal binary. Tests substitute a stub script.
	Tool string
}

// DefaultConfig returns a Config populated with the kiosk deployment defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 2 * time.Second,
		Tool:    "pkill",
	}
}

// PKiller implements interfaces.ProcessSignaler via `pkill -9 <pattern>`.
type PKiller struct {
	cfg    Config
	logger logging.Logger
}

// NewPKiller creates a PKiller, filling zero-valued options from DefaultConfig.
func NewPKiller(cfg Config, logger logging.Logger) *PKiller {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Tool == "" {
		cfg.Tool = def.Tool
	}
	return &PKiller{cfg: cfg, logger: logger}
}

// Kill sends SIGKILL to every process matching pattern. The tool's exit
// status is deliberately ignored: pkill exits non-zero when nothing matched,
// and whether the target actually dies is the restart loop's business, not
// ours. Only a timeout or a failure to run the tool at all is reported.
func (k *PKiller) Kill(ctx context.Context, pattern string) error {
	ctx, cancel := context.WithTimeout(ctx, k.cfg.Timeout)
	defer cancel()

	err := exec.CommandContext(ctx, k.cfg.Tool, "-9", pattern).Run()
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		k.logger.Warn("signal tool timed out", logging.Field{Key: "pattern", Value: pattern})
		return fmt.Errorf("signal %q: %w", pattern, context.DeadlineExceeded)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		k.logger.Debug("signal tool exit", logging.Field{Key: "pattern", Value: pattern}, logging.Field{Key: "code", Value: exitErr.ExitCode()})
		return nil
	}
	return fmt.Errorf("signal %q: %w", pattern, err)
}
