package runner

import (
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

// Wait blocks until the process exited and its output was fully consumed,
// then returns the final status.
func (p *Process) Wait() lib.ProcessStatus {
	<-p.entry.done
	return p.entry.lockAndGetStatus()
}

// live returns the number of processes that have not finished yet.
func (runner *Runner) live() int {
	runner.mu.RLock()
	defer runner.mu.RUnlock()
	return len(runner.processes)
}

func (pe *processEntry) lockAndGetStatus() lib.ProcessStatus {
	pe.mu.RLock()
	defer pe.mu.RUnlock()

	st := lib.ProcessStatus{
		State:            pe.state,
		StartTime:        pe.start,
		KilledBySentinel: pe.killedBySentinel,
	}
	if pe.exitCode != nil {
		code := *pe.exitCode
		st.ExitCode = &code
	}
	if pe.end != nil {
		t := *pe.end
		st.EndTime = &t
	}
	return st
}

// ID implements registry.Handle.
func (pe *processEntry) ID() string {
	return pe.id
}

// Alive reports whether the process has not finished yet.
func (pe *processEntry) Alive() bool {
	pe.mu.RLock()
	defer pe.mu.RUnlock()
	return pe.state == lib.ProcessStateRunning
}
