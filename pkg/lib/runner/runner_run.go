package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/console"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/sentinel"
)

// RunOptions configures a single run.
type RunOptions struct {
	// OnLine receives every output line in arrival order, before the next one
	// is processed.
	OnLine func(lib.Line)
	// Sentinel, when set, watches for a success phrase. The process is killed
	// on the first match and a non-zero exit code is no longer a failure.
	Sentinel *sentinel.Watcher
}

// Run spawns command and blocks until it exits or is killed, returning the
// aggregated output of both streams.
//
// A non-zero exit code fails the run with *lib.ProcessFailure unless the output
// contains "is not recognized" (the tool is simply not installed) or the
// attached sentinel fired. Cancelling ctx terminates the process.
func (runner *Runner) Run(ctx context.Context, command lib.Command, opts RunOptions) (string, error) {
	proc, err := runner.Start(command, opts)
	if err != nil {
		return "", err
	}

	stop := context.AfterFunc(ctx, func() {
		if _, err := proc.Stop(); err != nil {
			logger.Warnf("failed to terminate process %s on cancel: %v", proc.ID(), err)
		}
	})
	defer stop()

	status := proc.Wait()
	output := proc.Output()
	code := -1
	if status.ExitCode != nil {
		code = *status.ExitCode
	}

	if ctx.Err() != nil && !status.KilledBySentinel {
		runner.failed.Inc(1)
		return output, fmt.Errorf("%s: %w", command, ctx.Err())
	}

	if err := evaluateExit(command.String(), code, output, opts.Sentinel); err != nil {
		runner.failed.Inc(1)
		return output, err
	}
	return output, nil
}

// pump consumes output events until both streams are closed, then records the
// final status and forgets the entry. It is the only writer of the entry's
// output buffer.
func (runner *Runner) pump(pe *processEntry, opts RunOptions) {
	for line := range pe.events {
		pe.output.AppendLine(line.Text)

		if opts.OnLine != nil {
			opts.OnLine(line)
		}

		if pe.command.CaptureOutput {
			if line.Stream == lib.Stderr {
				runner.sink.Line(console.ErrorPrefix + line.Text)
			} else {
				runner.sink.Line(line.Text)
			}
		}

		if opts.Sentinel.Observe(line.Text, pe) {
			pe.mu.Lock()
			pe.killedBySentinel = true
			pe.mu.Unlock()
			runner.sentinelKills.Inc(1)
			console.Debugf(runner.sink, "success marker seen, stopping process")
		}
	}

	runner.mu.Lock()
	delete(runner.processes, pe.id)
	runner.mu.Unlock()

	pe.finish()
	runner.duration.Update(time.Since(pe.start))
	console.Debugf(runner.sink, "process exited (code=%d)", pe.exitCodeOr(-1))

	_ = CleanupCgroup(pe.id)
	if err := os.RemoveAll(pe.workDir); err != nil {
		logger.Debugf("failed to remove work dir %s: %v", pe.workDir, err)
	}
	close(pe.done)
}

// finish records exit code and end time. Must run after the reaper closed events.
func (pe *processEntry) finish() {
	pe.mu.Lock()
	defer pe.mu.Unlock()

	if ps := pe.cmd.ProcessState; ps != nil {
		code := ps.ExitCode()
		pe.exitCode = &code
	}
	now := time.Now()
	pe.end = &now
	pe.state = lib.ProcessStateStopped

	logger.Infof("process %s exited (code=%d, killedBySentinel=%v)", pe.id, pe.exitCodeLocked(-1), pe.killedBySentinel)
}

func (pe *processEntry) exitCodeOr(def int) int {
	pe.mu.RLock()
	defer pe.mu.RUnlock()
	return pe.exitCodeLocked(def)
}

func (pe *processEntry) exitCodeLocked(def int) int {
	if pe.exitCode == nil {
		return def
	}
	return *pe.exitCode
}

// evaluateExit applies the exit-code policy to a finished run.
func evaluateExit(command string, code int, output string, watcher *sentinel.Watcher) error {
	if code == 0 {
		return nil
	}
	if lib.ContainsFold(output, lib.NotRecognizedMarker) {
		logger.Debugf("%q exited with %d but reported %q, treating as success", command, code, lib.NotRecognizedMarker)
		return nil
	}
	if watcher != nil && watcher.Seen() {
		return nil
	}
	return &lib.ProcessFailure{Command: command, ExitCode: code, Output: output}
}

// IsNotFound reports whether err means the program could not be located.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
