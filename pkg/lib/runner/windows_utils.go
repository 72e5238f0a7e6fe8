//go:build windows

package runner

import (
	"syscall"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

// createNoWindow keeps console programs from flashing a window.
const createNoWindow = 0x08000000

// getSysProcAttr hands the argument string to the child verbatim: powershell
// and cmd parse their own command line, so it must not be re-quoted.
func getSysProcAttr(_ string, command lib.Command) *sysProcAttr {
	return plainSysProcAttr(command)
}

func plainSysProcAttr(command lib.Command) *sysProcAttr {
	cmdLine := syscall.EscapeArg(command.Program)
	if command.Arguments != "" {
		cmdLine += " " + command.Arguments
	}
	return &sysProcAttr{raw: &syscall.SysProcAttr{
		CmdLine:       cmdLine,
		HideWindow:    true,
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | createNoWindow,
	}}
}

func KillCgroup(string) (bool, error) {
	return false, nil
}

func CleanupCgroup(string) error {
	return nil
}
