//go:build !linux && !windows

package runner

import (
	"syscall"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

func getSysProcAttr(_ string, command lib.Command) *sysProcAttr {
	return plainSysProcAttr(command)
}

func plainSysProcAttr(lib.Command) *sysProcAttr {
	return &sysProcAttr{raw: &syscall.SysProcAttr{Setpgid: true}}
}

func KillCgroup(string) (bool, error) {
	return false, nil
}

func CleanupCgroup(string) error {
	return nil
}
