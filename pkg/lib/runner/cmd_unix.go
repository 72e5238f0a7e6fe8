//go:build !windows

package runner

import (
	"fmt"
	"os/exec"

	shlex "github.com/anmitsu/go-shlex"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

// buildCmd splits the argument string the way a POSIX shell would.
func buildCmd(command lib.Command) (*exec.Cmd, error) {
	args, err := shlex.Split(command.Arguments, true)
	if err != nil {
		return nil, fmt.Errorf("parse arguments of %s: %w", command.Program, err)
	}
	return exec.Command(command.Program, args...), nil
}
