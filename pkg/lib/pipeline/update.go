package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/runner"
)

// ErrNotInstalled is returned by an update of a tool that is not installed.
var ErrNotInstalled = errors.New("tool is not installed")

// CheckAndUpdate compares the installed and latest version as plain strings
// and runs "<tool> update" when they differ or force is set. The returned
// error is non-nil only for a Failed outcome or when the pipeline could not
// start.
func (o *Orchestrator) CheckAndUpdate(ctx context.Context, force bool) (*UpdateResult, error) {
	ctx, done, err := o.enter(ctx, opUpdate)
	if err != nil {
		return nil, err
	}
	defer done()

	tr := newTranscript(o.sink)
	res := &UpdateResult{}
	fail := func(err error, format string, args ...any) (*UpdateResult, error) {
		res.Outcome = UpdateFailed
		res.Summary = fmt.Sprintf(format, args...)
		tr.notef("%s", res.Summary)
		res.Transcript = tr.finish()
		o.failf("update failed: %v", err)
		return res, err
	}

	probe, err := o.probe(ctx)
	if err != nil {
		return fail(err, "Error checking %s installation: %v", o.settings.Tool, err)
	}
	if !probe.Installed {
		return fail(ErrNotInstalled, "%s is not installed. Please install it first.", o.settings.Tool)
	}
	res.Versions.Current = lib.StringPtr(probe.Version)

	latest, err := o.releases.Latest(ctx)
	if err != nil {
		return fail(err, "Failed to check for updates: %v", err)
	}
	if latest == "" {
		err := errors.New("empty latest version")
		return fail(err, "Could not determine the latest %s version.", o.settings.Tool)
	}
	res.Versions.Latest = lib.StringPtr(latest)
	tr.notef("Current version: %s, latest version: %s", probe.Version, latest)

	if res.Versions.UpToDate() && !force {
		res.Outcome = UpToDate
		res.Summary = fmt.Sprintf("%s is up to date (%s).", o.settings.Tool, latest)
		tr.notef("%s", res.Summary)
		res.Transcript = tr.finish()
		return res, nil
	}
	if force {
		tr.notef("Forcing update")
	}

	out, err := o.exec.Run(ctx, lib.Command{Program: o.settings.Tool, Arguments: "update", CaptureOutput: true}, runner.RunOptions{})
	tr.output(out)
	if err != nil {
		return fail(err, "Update failed: %v", err)
	}

	res.Outcome = Updated
	res.Summary = "Update completed successfully!"
	tr.notef("%s", res.Summary)
	res.Transcript = tr.finish()
	return res, nil
}

// ForceUpdate runs the update even when the versions already match.
func (o *Orchestrator) ForceUpdate(ctx context.Context) (*UpdateResult, error) {
	return o.CheckAndUpdate(ctx, true)
}
