package main

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/config"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/console"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/envpath"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/pipeline"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/release"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/runner"
)

// app is the set of collaborators one command invocation works with.
type app struct {
	cfg    *config.Config
	runner *runner.Runner
	orch   *pipeline.Orchestrator
	stop   func() bool
}

// newApp wires the orchestrator. Cancelling ctx closes it, which kills the
// running installer.
func newApp(ctx context.Context, cfg *config.Config, quiet bool, out io.Writer) (*app, error) {
	var sink console.Sink = console.NewWriterSink(out)
	if quiet {
		sink = console.Nop
	}

	r, err := runner.NewRunner(runner.WithSink(sink))
	if err != nil {
		return nil, err
	}

	merger := envpath.NewMerger(nil, envpath.WithSeparator(cfg.PathSeparator))
	fetcher := release.NewFetcher(cfg.Release.URL, cfg.Release.UserAgent, release.MakePesterClient(cfg.Release.Timeout))
	orch := pipeline.NewOrchestrator(r, fetcher, merger, sink, pipeline.SettingsFromConfig(cfg))

	a := &app{cfg: cfg, runner: r, orch: orch}
	a.stop = context.AfterFunc(ctx, func() {
		log.Infof("interrupted, shutting down")
		orch.Close()
	})
	return a, nil
}

func (a *app) close() {
	a.stop()
	a.orch.Close()
	if err := a.runner.Close(); err != nil {
		log.Debugf("failed to clean up runner: %v", err)
	}
}

// silenced drops err once shutdown started.
func (a *app) silenced(err error) error {
	if err != nil && a.orch.Closing() {
		log.Debugf("suppressed during shutdown: %v", err)
		return nil
	}
	return err
}
