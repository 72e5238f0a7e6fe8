package pipeline

import (
	"errors"
	"sync"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

// ErrClosed is returned for pipelines requested after Close.
var ErrClosed = errors.New("orchestrator is closing")

type operation int

const (
	opProbe operation = iota
	opInstall
	opUpdate
)

func (op operation) String() string {
	switch op {
	case opInstall:
		return "install"
	case opUpdate:
		return "update"
	default:
		return "version probe"
	}
}

// State holds the pipeline flags. Installing, updating and probing are
// mutually exclusive; closing rejects every new pipeline.
type State struct {
	mu               sync.Mutex
	installing       bool
	installCompleted bool
	updating         bool
	probing          bool
	closing          bool
}

// StateSnapshot is a copy of the flags at one point in time.
type StateSnapshot struct {
	Installing       bool
	InstallCompleted bool
	Updating         bool
	Probing          bool
	Closing          bool
}

func (s *State) begin(op operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing {
		return ErrClosed
	}
	if running := s.runningLocked(); running != "" {
		return &lib.BusyFailure{Running: running}
	}

	switch op {
	case opInstall:
		s.installing = true
	case opUpdate:
		s.updating = true
	default:
		s.probing = true
	}
	return nil
}

func (s *State) end(op operation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch op {
	case opInstall:
		s.installing = false
	case opUpdate:
		s.updating = false
	default:
		s.probing = false
	}
}

func (s *State) runningLocked() string {
	switch {
	case s.installing:
		return opInstall.String()
	case s.updating:
		return opUpdate.String()
	case s.probing:
		return opProbe.String()
	}
	return ""
}

func (s *State) markInstalled() {
	s.mu.Lock()
	s.installCompleted = true
	s.mu.Unlock()
}

// close sets closing and reports whether it was already set.
func (s *State) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.closing
	s.closing = true
	return was
}

func (s *State) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StateSnapshot{
		Installing:       s.installing,
		InstallCompleted: s.installCompleted,
		Updating:         s.updating,
		Probing:          s.probing,
		Closing:          s.closing,
	}
}
