package runner

import (
	"os"
	"syscall"
)

// sysProcAttr carries the platform process attributes plus resources that must
// be released once the process started.
type sysProcAttr struct {
	file   *os.File
	raw    *syscall.SysProcAttr
	cgroup bool
}

func (a *sysProcAttr) close() {
	if a.file != nil {
		_ = a.file.Close()
		a.file = nil
	}
}
