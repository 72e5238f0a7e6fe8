package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/console"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/output_storage"
)

// Process is a command spawned by Start.
type Process struct {
	entry *processEntry
}

// Start spawns command and returns immediately. Output is consumed in the
// background; use Wait to block until the process exited.
func (runner *Runner) Start(command lib.Command, opts RunOptions) (*Process, error) {
	pe, err := runner.start(command)
	if err != nil {
		return nil, err
	}

	go runner.pump(pe, opts)

	return &Process{entry: pe}, nil
}

// ID returns the process identifier.
func (p *Process) ID() string {
	return p.entry.id
}

// Output returns everything both streams produced so far.
func (p *Process) Output() string {
	return p.entry.output.String()
}

// start launches the process with its output wired into the entry's event
// channel. The caller must run pump to consume events and reap the process.
func (runner *Runner) start(command lib.Command) (*processEntry, error) {
	if command.Program == "" {
		return nil, errors.New("command is required")
	}

	if command.Shell {
		runner.KillAll()
	}

	processId := lib.NewID()
	workDir := filepath.Join(runner.baseDir, processId)
	if err := os.MkdirAll(workDir, 0o700); err != nil {
		return nil, err
	}

	pe := &processEntry{
		id:      processId,
		command: command,
		workDir: workDir,
		state:   lib.ProcessStateRunning,
		output:  output_storage.NewOutputStorage(),
		events:  make(chan lib.Line, 64),
		done:    make(chan struct{}),
	}

	logger.Infof("starting process %s: %s", processId, command)
	console.Debugf(runner.sink, "starting process: %s", command)

	attr := getSysProcAttr(processId, command)
	stdout, stderr, err := pe.launch(attr)
	if err != nil && attr.cgroup {
		logger.Debugf("start inside cgroup failed, retrying without: %v", err)
		_ = CleanupCgroup(processId)
		attr = plainSysProcAttr(command)
		stdout, stderr, err = pe.launch(attr)
	}
	if err != nil {
		logger.Warnf("failed to start process %s: %v", processId, err)
		_ = os.RemoveAll(workDir)
		return nil, fmt.Errorf("start %s: %w", command.Program, err)
	}

	pe.cgroup = attr.cgroup
	pe.pid = pe.cmd.Process.Pid
	pe.start = time.Now()
	runner.started.Inc(1)

	// Reaper: Wait returns once the process exited and both writers received
	// everything, so closing events afterwards loses nothing.
	go func() {
		if err := pe.cmd.Wait(); err != nil {
			logger.Debugf("process %s finished with: %v", processId, err)
		}
		stdout.flush()
		stderr.flush()
		close(pe.events)
	}()

	runner.mu.Lock()
	runner.processes[processId] = pe
	runner.mu.Unlock()

	if command.Shell {
		runner.registry.Register(pe)
	}

	return pe, nil
}

// launch builds a fresh exec.Cmd for the entry and starts it.
func (pe *processEntry) launch(attr *sysProcAttr) (*lineWriter, *lineWriter, error) {
	defer attr.close()

	cmd, err := buildCmd(pe.command)
	if err != nil {
		return nil, nil, err
	}
	cmd.Dir = pe.workDir
	cmd.WaitDelay = pipeDrainDelay
	cmd.SysProcAttr = attr.raw

	// stdin stays nil so interactive prompts read EOF instead of hanging
	stdout := newLineWriter(lib.Stdout, pe.events)
	stderr := newLineWriter(lib.Stderr, pe.events)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}
	pe.cmd = cmd
	return stdout, stderr, nil
}

