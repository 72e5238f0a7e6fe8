//go:build windows

package runner

import (
	"errors"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

func killTree(_ string, pid int, _ bool) error {
	killDescendants(descendants(pid))

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return nil
		}
		return err
	}
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
