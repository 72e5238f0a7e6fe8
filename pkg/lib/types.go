package lib

import "time"

// ProcessState mirrors the lifecycle of a spawned external process.
type ProcessState int

const (
	ProcessStateUnspecified ProcessState = iota
	ProcessStateRunning
	ProcessStateStopped
)

func (s ProcessState) String() string {
	switch s {
	case ProcessStateRunning:
		return "Running"
	case ProcessStateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Command describes one external invocation. Arguments is a single command-line
// string, exactly as it would be typed after the program name.
type Command struct {
	Program   string
	Arguments string
	// CaptureOutput mirrors every produced line to the display sink. Lines are
	// always aggregated and handed to the line observer regardless.
	CaptureOutput bool
	// Shell marks a shell-interpreter invocation. At most one of those is alive
	// at any time.
	Shell bool
}

func (c Command) String() string {
	if c.Arguments == "" {
		return c.Program
	}
	return c.Program + " " + c.Arguments
}

// ProcessStatus captures runtime state and timestamps.
type ProcessStatus struct {
	State            ProcessState
	ExitCode         *int
	StartTime        time.Time
	EndTime          *time.Time
	KilledBySentinel bool
}

// Stream identifies the pipe a line was read from.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Line is a single line of process output, without its terminator.
type Line struct {
	Stream Stream
	Text   string
}

// VersionPair holds the installed and the latest published version. A nil field
// means the value could not be determined. Versions are opaque strings.
type VersionPair struct {
	Current *string
	Latest  *string
}

// UpToDate reports whether both versions are known and equal.
func (v VersionPair) UpToDate() bool {
	if v.Current == nil || v.Latest == nil {
		return false
	}
	return *v.Current == *v.Latest
}
