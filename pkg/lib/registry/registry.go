// Package registry tracks live shell-interpreter processes so that a new shell
// invocation can kill stale ones first.
package registry

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("component", "registry")

// Handle is a killable process tracked by the registry.
type Handle interface {
	ID() string
	Alive() bool
	Terminate() error
}

// Registry keeps at most one live handle. Termination is best effort: errors
// are logged and the handle is forgotten either way.
type Registry struct {
	mu      sync.Mutex
	handles map[string]Handle
	order   []string
}

func New() *Registry {
	return &Registry{handles: make(map[string]Handle)}
}

// Register tracks h. Any handle still alive is killed first.
func (r *Registry) Register(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.killAllLocked()
	r.handles[h.ID()] = h
	r.order = append(r.order, h.ID())
	logger.Debugf("registered process %s", h.ID())
}

// KillAll terminates every tracked handle that is still alive, clears the
// registry and returns how many kill requests were issued.
func (r *Registry) KillAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.killAllLocked()
}

func (r *Registry) killAllLocked() int {
	killed := 0
	for _, id := range r.order {
		h := r.handles[id]
		if h == nil || !h.Alive() {
			continue
		}
		killed++
		if err := h.Terminate(); err != nil {
			logger.Warnf("failed to kill old process %s: %v", id, err)
			continue
		}
		logger.Infof("killed old process %s", id)
	}

	r.handles = make(map[string]Handle)
	r.order = nil
	return killed
}

// Current returns the most recently registered handle, or nil.
func (r *Registry) Current() Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.order) == 0 {
		return nil
	}
	return r.handles[r.order[len(r.order)-1]]
}

// Len returns the number of tracked handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}
