package runner

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

var errStillRunning = errors.New("process still running")

// Terminate kills the process together with everything it spawned. Killing a
// process that already exited is a no-op.
func (pe *processEntry) Terminate() error {
	if !pe.Alive() {
		return nil
	}

	logger.Infof("killing process %s (pid %d)", pe.id, pe.pid)
	if err := killTree(pe.id, pe.pid, pe.cgroup); err != nil {
		return &lib.KillError{ID: pe.id, Pid: pe.pid, Err: err}
	}
	return nil
}

// Stop kills the process and waits briefly for it to be reaped. The returned
// status may still be Running if the process outlived the wait.
func (p *Process) Stop() (lib.ProcessStatus, error) {
	pe := p.entry
	if err := pe.Terminate(); err != nil {
		return pe.lockAndGetStatus(), err
	}

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(10*time.Millisecond), 100)
	if err := backoff.Retry(func() error {
		if pe.Alive() {
			return errStillRunning
		}
		return nil
	}, b); err != nil {
		logger.Warnf("process %s (pid %d) still running after kill", pe.id, pe.pid)
	}

	return pe.lockAndGetStatus(), nil
}
