//go:build !windows

package runner

import (
	"errors"

	"golang.org/x/sys/unix"
)

func killTree(id string, pid int, inCgroup bool) error {
	if inCgroup {
		ok, err := KillCgroup(id)
		if ok {
			return nil
		}
		logger.Debugf("cgroup kill failed for %s, falling back to process group: %v", id, err)
	}

	// collected before the group dies, descendants get reparented afterwards
	stray := descendants(pid)

	err := unix.Kill(-pid, unix.SIGKILL)
	killDescendants(stray)
	if errors.Is(err, unix.ESRCH) {
		return nil
	}
	return err
}
