// Package sentinel detects a success phrase in streamed process output.
//
// The external installers have no structured completion signal and may keep
// running after printing their success message, so the first matching line
// also requests termination of the producing process.
package sentinel

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("component", "sentinel")

// Terminator is the process that produced the observed lines.
type Terminator interface {
	Terminate() error
}

// Watcher matches a fixed phrase, case-insensitively, against output lines.
// A Watcher serves a single run.
type Watcher struct {
	phrase string

	mu   sync.Mutex
	seen bool
}

func New(phrase string) *Watcher {
	return &Watcher{phrase: strings.ToLower(phrase)}
}

// Observe inspects line and returns true only for the first matching line, in
// which case t is asked to terminate. Termination errors are logged, never
// returned.
func (w *Watcher) Observe(line string, t Terminator) bool {
	if w == nil || w.phrase == "" {
		return false
	}
	if !strings.Contains(strings.ToLower(line), w.phrase) {
		return false
	}

	w.mu.Lock()
	if w.seen {
		w.mu.Unlock()
		return false
	}
	w.seen = true
	w.mu.Unlock()

	logger.Debugf("success marker %q observed", w.phrase)
	if t == nil {
		return true
	}
	if err := t.Terminate(); err != nil {
		logger.Warnf("failed to terminate process after success marker: %v", err)
	}
	return true
}

// Seen reports whether the phrase has been observed.
func (w *Watcher) Seen() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seen
}
