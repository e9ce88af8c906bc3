// Package display queries the windowing environment for browser windows.
package display

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/raysh454/browserctl/internal/logging"
)

var (
	// ErrWindowNotFound means the query tool failed or matched no window.
	ErrWindowNotFound = errors.New("window not found")

	// ErrTimeout means the query tool exceeded its timeout.
	ErrTimeout = errors.New("window query timed out")
)

// Config contains runtime options for the X window querier.
type Config struct {
	// Display is the X display target, set on the tool's environment only.
	Display string

	// Timeout bounds a single query invocation.
	Timeout time.Duration

	// Tool is the window-query binary. Tests substitute a stub script.
	Tool string
}

// DefaultConfig returns a Config populated with the kiosk deployment defaults.
func DefaultConfig() Config {
	return Config{
		Display: ":99",
		Timeout: 2 * time.Second,
		Tool:    "xdotool",
	}
}

// XQuerier finds windows via `xdotool search --class <class>`.
type XQuerier struct {
	cfg    Config
	logger logging.Logger
}

// NewXQuerier creates an XQuerier, filling zero-valued options from DefaultConfig.
func NewXQuerier(cfg Config, logger logging.Logger) *XQuerier {
	def := DefaultConfig()
	if cfg.Display == "" {
		cfg.Display = def.Display
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Tool == "" {
		cfg.Tool = def.Tool
	}
	return &XQuerier{cfg: cfg, logger: logger}
}

// Query implements interfaces.WindowQuerier. The returned ids are the tool's
// output lines in order; callers typically take the first.
func (q *XQuerier) Query(ctx context.Context, class string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, q.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, q.cfg.Tool, "search", "--class", class)
	cmd.Env = append(os.Environ(), "DISPLAY="+q.cfg.Display)

	out, err := cmd.Output()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		q.logger.Warn("window query timed out", logging.Field{Key: "class", Value: class})
		return nil, ErrTimeout
	}
	if err != nil {
		q.logger.Warn("window query failed", logging.Field{Key: "class", Value: class}, logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrWindowNotFound, err)
	}

	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, ErrWindowNotFound
	}

	lines := strings.Split(trimmed, "\n")
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrWindowNotFound
	}

	q.logger.Debug("window query matched", logging.Field{Key: "class", Value: class}, logging.Field{Key: "count", Value: len(ids)})
	return ids, nil
}
