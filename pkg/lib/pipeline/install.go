package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/runner"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/sentinel"
)

// Install runs the tool installer and, if it printed its success phrase, the
// plugin installer. A plugin failure only downgrades the outcome to
// ToolOnlyInstalled. The returned error is non-nil only for a Failed outcome
// or when the pipeline could not start.
func (o *Orchestrator) Install(ctx context.Context) (*InstallResult, error) {
	ctx, done, err := o.enter(ctx, opInstall)
	if err != nil {
		return nil, err
	}
	defer done()

	tr := newTranscript(o.sink)
	res := &InstallResult{}

	res.Tool = o.installTool(ctx, tr)
	if !res.Tool.OK() {
		res.Outcome = InstallFailed
		res.Summary = fmt.Sprintf("%s installation did not complete successfully.", o.settings.Tool)
		tr.notef("%s: %v", res.Summary, res.Tool.Err)
		res.Transcript = tr.finish()
		o.failf("install failed: %v", res.Tool.Err)
		return res, res.Tool.Err
	}

	o.state.markInstalled()
	tr.notef("%s installed successfully! Installing %s...", o.settings.Tool, o.settings.PluginName)

	o.refreshPath(tr)

	res.Plugin = o.installPlugin(ctx, tr)
	if res.Plugin.OK() {
		res.Outcome = ToolAndPluginInstalled
		res.Summary = fmt.Sprintf("%s and %s were successfully installed!", o.settings.Tool, o.settings.PluginName)
		tr.notef("%s installed successfully!", o.settings.PluginName)
	} else {
		res.Outcome = ToolOnlyInstalled
		res.Summary = fmt.Sprintf("%s was successfully installed! (%s installation failed)", o.settings.Tool, o.settings.PluginName)
		tr.notef("Warning: %s installation failed: %v", o.settings.PluginName, res.Plugin.Err)
		tr.notef("%s is still installed and functional.", o.settings.Tool)
		o.failf("plugin install failed: %v", res.Plugin.Err)
	}

	res.Transcript = tr.finish()
	return res, nil
}

// installTool succeeds only when the sentinel was seen. The exit code does not
// matter then, and a clean exit without the sentinel is a failure.
func (o *Orchestrator) installTool(ctx context.Context, tr *transcript) StepResult {
	step := StepResult{Name: "install " + o.settings.Tool}
	w := sentinel.New(o.settings.Sentinel)

	out, err := o.exec.Run(ctx, o.settings.ToolInstaller, runner.RunOptions{Sentinel: w})
	tr.output(out)
	step.Output = out

	switch {
	case w.Seen():
		if err != nil {
			logger.Debugf("tool installer reported success, ignoring: %v", err)
		}
	case err != nil:
		step.Err = err
	default:
		step.Err = &lib.SentinelNotObserved{Phrase: o.settings.Sentinel}
	}
	return step
}

// installPlugin tries each installer in order and stops at the first success.
func (o *Orchestrator) installPlugin(ctx context.Context, tr *transcript) StepResult {
	step := StepResult{Name: "install " + o.settings.PluginName}

	var errs *multierror.Error
	for i, cmd := range o.settings.PluginInstallers {
		if i > 0 {
			tr.notef("retrying %s installation with %s", o.settings.PluginName, cmd.Program)
		}
		out, err := o.exec.Run(ctx, cmd, runner.RunOptions{})
		tr.output(out)
		step.Output += out
		if err == nil {
			return step
		}
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", cmd.Program, err))
		if ctx.Err() != nil {
			break
		}
	}

	if errs == nil {
		errs = multierror.Append(errs, fmt.Errorf("no %s installer configured", o.settings.PluginName))
	}
	step.Err = errs.ErrorOrNil()
	return step
}

func (o *Orchestrator) refreshPath(tr *transcript) {
	if o.path == nil {
		return
	}
	if _, err := o.path.Apply(); err != nil {
		tr.notef("Warning: failed to refresh PATH: %v", err)
		logger.Warnf("failed to refresh PATH: %v", err)
	}
}
