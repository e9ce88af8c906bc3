// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"sync"

	"github.com/raysh454/browserctl/internal/history"
	"github.com/raysh454/browserctl/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── WindowQuerier ─────────────────────────────────────────────────────

// DummyWindowQuerier implements interfaces.WindowQuerier.
// By default it reports a single window "12345". Set Err to force a failure.
type DummyWindowQuerier struct {
	IDs []string
	Err error

	mu      sync.Mutex
	Queries []string
}

func (d *DummyWindowQuerier) Query(_ context.Context, class string) ([]string, error) {
	d.mu.Lock()
	d.Queries = append(d.Queries, class)
	d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	if d.IDs == nil {
		return []string{"12345"}, nil
	}
	return append([]string(nil), d.IDs...), nil
}

// ─── ProcessSignaler ───────────────────────────────────────────────────

// DummySignaler implements interfaces.ProcessSignaler with in-memory recording.
type DummySignaler struct {
	Err error

	mu       sync.Mutex
	Patterns []string
}

func (d *DummySignaler) Kill(_ context.Context, pattern string) error {
	d.mu.Lock()
	d.Patterns = append(d.Patterns, pattern)
	d.mu.Unlock()
	return d.Err
}

// Sent returns the patterns signaled so far.
func (d *DummySignaler) Sent() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.Patterns...)
}

// ─── HandoffWriter ─────────────────────────────────────────────────────

// DummyHandoff implements interfaces.HandoffWriter, keeping the slot in memory.
type DummyHandoff struct {
	Err error

	mu     sync.Mutex
	Last   string
	Writes int
}

func (d *DummyHandoff) Write(url string) error {
	if d.Err != nil {
		return d.Err
	}
	d.mu.Lock()
	d.Last = url
	d.Writes++
	d.mu.Unlock()
	return nil
}

func (d *DummyHandoff) Path() string { return "/tmp/dummy-handoff" }

// Slot returns the last written value and the write count.
func (d *DummyHandoff) Slot() (string, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Last, d.Writes
}

// ─── Journal ───────────────────────────────────────────────────────────

// DummyJournal implements server.Journal with in-memory recording.
type DummyJournal struct {
	RecordErr error
	ListErr   error

	mu      sync.Mutex
	Entries []history.Entry
}

func (d *DummyJournal) Record(_ context.Context, url, windowID string) error {
	if d.RecordErr != nil {
		return d.RecordErr
	}
	d.mu.Lock()
	d.Entries = append(d.Entries, history.Entry{URL: url, WindowID: windowID})
	d.mu.Unlock()
	return nil
}

func (d *DummyJournal) List(_ context.Context, limit int) ([]history.Entry, error) {
	if d.ListErr != nil {
		return nil, d.ListErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if limit > 0 && limit < len(d.Entries) {
		return append([]history.Entry(nil), d.Entries[:limit]...), nil
	}
	return append([]history.Entry(nil), d.Entries...), nil
}
