//go:build windows

package runner

import (
	"os/exec"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

// buildCmd leaves Args empty; the raw command line is set through SysProcAttr.
func buildCmd(command lib.Command) (*exec.Cmd, error) {
	return exec.Command(command.Program), nil
}
