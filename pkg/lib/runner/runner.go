package runner

import (
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/console"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/output_storage"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/registry"
)

var logger = log.WithField("component", "runner")

// pipeDrainDelay bounds how long Wait keeps reading stdout/stderr after the
// process exited, for grandchildren that inherited the pipes.
const pipeDrainDelay = 2 * time.Second

// Runner spawns external commands, streams their output and keeps track of the
// processes it started.
type Runner struct {
	mu        sync.RWMutex
	processes map[string]*processEntry // live only, pump removes finished entries
	baseDir   string

	registry *registry.Registry
	sink     console.Sink

	metrics       metrics.Registry
	started       metrics.Counter
	failed        metrics.Counter
	sentinelKills metrics.Counter
	duration      metrics.Timer
}

type processEntry struct {
	id      string
	command lib.Command
	cmd     *exec.Cmd
	workDir string
	cgroup  bool
	pid     int

	// status fields
	mu               sync.RWMutex
	state            lib.ProcessState
	exitCode         *int
	start            time.Time
	end              *time.Time
	killedBySentinel bool

	// output holds every line of both streams in arrival order
	output *output_storage.OutputStorage
	events chan lib.Line
	done   chan struct{}
}

// Option customizes a Runner.
type Option func(*Runner)

// WithSink mirrors process output and lifecycle markers to sink.
func WithSink(sink console.Sink) Option {
	return func(r *Runner) {
		r.sink = console.OrNop(sink)
	}
}

// WithRegistry shares a process registry between runners.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Runner) {
		r.registry = reg
	}
}

// NewRunner creates a new Runner. Processes run inside per-process directories
// under a fresh temporary base directory.
func NewRunner(opts ...Option) (*Runner, error) {
	baseDir, err := os.MkdirTemp("", "sau-*")
	if err != nil {
		return nil, err
	}

	m := metrics.NewRegistry()
	r := &Runner{
		processes:     make(map[string]*processEntry),
		baseDir:       baseDir,
		registry:      registry.New(),
		sink:          console.Nop,
		metrics:       m,
		started:       metrics.GetOrRegisterCounter("runs.started", m),
		failed:        metrics.GetOrRegisterCounter("runs.failed", m),
		sentinelKills: metrics.GetOrRegisterCounter("runs.sentinel_kills", m),
		duration:      metrics.GetOrRegisterTimer("runs.duration", m),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// KillAll terminates every live shell-interpreter process.
func (runner *Runner) KillAll() int {
	killed := runner.registry.KillAll()
	for i := 0; i < killed; i++ {
		console.Debugf(runner.sink, "killed old process")
	}
	return killed
}

// WriteMetrics dumps the run counters in a human readable form.
func (runner *Runner) WriteMetrics(w io.Writer) {
	metrics.WriteOnce(runner.metrics, w)
}

// Close kills every process that is still running and removes the working
// directories.
func (runner *Runner) Close() error {
	runner.KillAll()

	runner.mu.RLock()
	for _, pe := range runner.processes {
		if err := pe.Terminate(); err != nil {
			logger.Warnf("close: %v", err)
		}
	}
	runner.mu.RUnlock()

	return os.RemoveAll(runner.baseDir)
}
