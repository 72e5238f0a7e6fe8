package pipeline

import (
	"context"
	"strings"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/runner"
)

// Probe runs "<tool> --version" quietly. The tool counts as installed when it
// printed something other than the shell's "is not recognized" message.
func (o *Orchestrator) Probe(ctx context.Context) (ProbeResult, error) {
	ctx, done, err := o.enter(ctx, opProbe)
	if err != nil {
		return ProbeResult{}, err
	}
	defer done()

	return o.probe(ctx)
}

func (o *Orchestrator) probe(ctx context.Context) (ProbeResult, error) {
	out, err := o.exec.Run(ctx, lib.Command{Program: o.settings.Tool, Arguments: "--version"}, runner.RunOptions{})
	if err != nil {
		if runner.IsNotFound(err) {
			logger.Debugf("%s not found: %v", o.settings.Tool, err)
			return ProbeResult{}, nil
		}
		return ProbeResult{}, err
	}

	version := strings.TrimSpace(out)
	if version == "" || lib.ContainsFold(version, lib.NotRecognizedMarker) {
		return ProbeResult{}, nil
	}
	return ProbeResult{Installed: true, Version: version}, nil
}

// Versions returns the installed and the latest published version. Either
// side is nil when it could not be determined; the error explains why.
func (o *Orchestrator) Versions(ctx context.Context) (lib.VersionPair, error) {
	ctx, done, err := o.enter(ctx, opProbe)
	if err != nil {
		return lib.VersionPair{}, err
	}
	defer done()

	var pair lib.VersionPair
	probe, err := o.probe(ctx)
	if err != nil {
		return pair, err
	}
	pair.Current = lib.StringPtr(probe.Version)

	latest, err := o.releases.Latest(ctx)
	if err != nil {
		return pair, err
	}
	pair.Latest = lib.StringPtr(latest)
	return pair, nil
}
