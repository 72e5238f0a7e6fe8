package pipeline

import "github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"

type InstallOutcome int

const (
	InstallFailed InstallOutcome = iota
	ToolOnlyInstalled
	ToolAndPluginInstalled
)

func (o InstallOutcome) String() string {
	switch o {
	case ToolAndPluginInstalled:
		return "ToolAndPluginInstalled"
	case ToolOnlyInstalled:
		return "ToolOnlyInstalled"
	default:
		return "Failed"
	}
}

type UpdateOutcome int

const (
	UpdateFailed UpdateOutcome = iota
	UpToDate
	Updated
)

func (o UpdateOutcome) String() string {
	switch o {
	case UpToDate:
		return "UpToDate"
	case Updated:
		return "Updated"
	default:
		return "Failed"
	}
}

// StepResult is the result of one pipeline step. A nil Err means success.
type StepResult struct {
	Name   string
	Output string
	Err    error
}

func (r StepResult) OK() bool {
	return r.Err == nil
}

type InstallResult struct {
	Outcome InstallOutcome
	Tool    StepResult
	// Plugin is zero when the tool step failed and the plugin was skipped.
	Plugin     StepResult
	Summary    string
	Transcript string
}

// Warning returns the plugin failure of a ToolOnlyInstalled outcome.
func (r *InstallResult) Warning() error {
	if r.Outcome != ToolOnlyInstalled {
		return nil
	}
	return r.Plugin.Err
}

type UpdateResult struct {
	Outcome    UpdateOutcome
	Versions   lib.VersionPair
	Summary    string
	Transcript string
}

type ProbeResult struct {
	Installed bool
	Version   string
}
