package server

import (
	"context"

	"github.com/raysh454/browserctl/internal/history"
	"github.com/raysh454/browserctl/internal/interfaces"
	"github.com/raysh454/browserctl/internal/logging"
)

// Journal is the slice of the history store the server needs.
type Journal interface {
	Record(ctx context.Context, url, windowID string) error
	List(ctx context.Context, limit int) ([]history.Entry, error)
}

// Config wires the server's collaborators.
type Config struct {
	// ListenAddr is the HTTP listen address (all interfaces, port 6090 in
	// the kiosk deployment).
	ListenAddr string

	// WindowClass is the class filter used when locating the browser window.
	WindowClass string

	// KillPattern is the process-name pattern the terminate signal targets.
	KillPattern string

	// Windows locates the browser window before a navigation is attempted.
	Windows interfaces.WindowQuerier

	// Procs delivers the forceful terminate signal to the browser.
	Procs interfaces.ProcessSignaler

	// Handoff passes the target URL to the external restart loop.
	Handoff interfaces.HandoffWriter

	// History is optional; nil disables journaling.
	History Journal

	Logger logging.Logger
}
