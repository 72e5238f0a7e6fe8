package lib

import "fmt"

// ProcessFailure is returned when a process exits with a non-zero code that is
// not excused by the "not recognized" marker or an observed success sentinel.
type ProcessFailure struct {
	Command  string
	ExitCode int
	Output   string
}

func (e *ProcessFailure) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d", e.Command, e.ExitCode)
}

// SentinelNotObserved means a run finished but never printed the expected
// success phrase. It counts as a failure even with exit code 0.
type SentinelNotObserved struct {
	Phrase string
}

func (e *SentinelNotObserved) Error() string {
	return fmt.Sprintf("success marker %q was not observed", e.Phrase)
}

// NetworkFailure wraps a transport error of the release lookup.
type NetworkFailure struct {
	URL string
	Err error
}

func (e *NetworkFailure) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkFailure) Unwrap() error {
	return e.Err
}

// BusyFailure is returned when a pipeline is requested while another one runs.
type BusyFailure struct {
	Running string
}

func (e *BusyFailure) Error() string {
	return fmt.Sprintf("busy: %s already in progress", e.Running)
}

// KillError describes a failed termination attempt. Callers log it and move on.
type KillError struct {
	ID  string
	Pid int
	Err error
}

func (e *KillError) Error() string {
	return fmt.Sprintf("failed to kill process %s (pid %d): %v", e.ID, e.Pid, e.Err)
}

func (e *KillError) Unwrap() error {
	return e.Err
}
