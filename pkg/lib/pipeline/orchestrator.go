// Package pipeline sequences the install and update steps of the managed tool
// and its plugin on top of the process runner.
//
// One Orchestrator owns one State. At most one pipeline runs at a time; a
// request made while another one is active fails immediately with
// *lib.BusyFailure instead of queuing.
package pipeline

import (
	"bytes"
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/config"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/console"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/runner"
)

var logger = log.WithField("component", "pipeline")

// Executor runs one external command to completion.
type Executor interface {
	Run(ctx context.Context, command lib.Command, opts runner.RunOptions) (string, error)
	KillAll() int
}

// VersionSource returns the latest published tool version.
type VersionSource interface {
	Latest(ctx context.Context) (string, error)
}

// PathApplier refreshes PATH of the current process.
type PathApplier interface {
	Apply() (string, error)
}

// Settings are the fixed commands and names the pipelines work with.
type Settings struct {
	Tool             string
	Sentinel         string
	ToolInstaller    lib.Command
	PluginName       string
	PluginInstallers []lib.Command
}

// SettingsFromConfig builds Settings. Installer commands are shell-interpreter
// invocations with streamed output.
func SettingsFromConfig(cfg *config.Config) Settings {
	s := Settings{
		Tool:          cfg.Tool.Program,
		Sentinel:      cfg.Tool.Sentinel,
		ToolInstaller: cfg.Tool.Install.Shell(),
		PluginName:    cfg.Plugin.Name,
	}
	for _, inst := range cfg.Plugin.Installers {
		s.PluginInstallers = append(s.PluginInstallers, inst.Shell())
	}
	return s
}

type Orchestrator struct {
	exec     Executor
	releases VersionSource
	path     PathApplier
	sink     console.Sink
	settings Settings

	state State

	closed      context.Context
	closeCancel context.CancelFunc
}

// NewOrchestrator wires the pipelines. path may be nil to skip the PATH refresh
// and sink may be nil for headless use.
func NewOrchestrator(exec Executor, releases VersionSource, path PathApplier, sink console.Sink, settings Settings) *Orchestrator {
	closed, cancel := context.WithCancel(context.Background())
	if settings.PluginName == "" {
		settings.PluginName = "plugin"
	}
	return &Orchestrator{
		exec:        exec,
		releases:    releases,
		path:        path,
		sink:        console.OrNop(sink),
		settings:    settings,
		closed:      closed,
		closeCancel: cancel,
	}
}

// State returns the current pipeline flags.
func (o *Orchestrator) State() StateSnapshot {
	return o.state.Snapshot()
}

// Closing reports whether Close was called. Callers stop surfacing errors to
// the user from then on.
func (o *Orchestrator) Closing() bool {
	return o.state.Snapshot().Closing
}

// enter marks op as running and returns a context that is cancelled on Close.
func (o *Orchestrator) enter(ctx context.Context, op operation) (context.Context, func(), error) {
	if err := o.state.begin(op); err != nil {
		logger.Debugf("rejecting %s: %v", op, err)
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(o.closed, cancel)
	return ctx, func() {
		stop()
		cancel()
		o.state.end(op)
	}, nil
}

// Close blocks new pipelines, cancels the running one and kills tracked shell
// processes. It never waits for processes to exit.
func (o *Orchestrator) Close() {
	if o.state.close() {
		return
	}
	o.closeCancel()

	if killed := o.exec.KillAll(); killed > 0 {
		logger.Infof("closing: killed %d process(es)", killed)
	}

	if m, ok := o.exec.(interface{ WriteMetrics(io.Writer) }); ok && logger.Logger.IsLevelEnabled(log.DebugLevel) {
		var b bytes.Buffer
		m.WriteMetrics(&b)
		logger.Debugf("runner metrics:\n%s", b.String())
	}
}

// failf logs a pipeline failure unless the orchestrator is closing.
func (o *Orchestrator) failf(format string, args ...any) {
	if o.Closing() {
		logger.Debugf(format, args...)
		return
	}
	logger.Warnf(format, args...)
}
