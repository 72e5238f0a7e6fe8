//go:build linux

package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

const (
	cgroupRoot = "/sys/fs/cgroup/sau"
)

var (
	cgroupInitOnce sync.Once
	cgroupInitErr  error
)

// initCgroups prepares the cgroup root once. As non-root this is a no-op.
func initCgroups() error {
	cgroupInitOnce.Do(func() {
		cgroupInitErr = initCgroupsImpl()
	})
	return cgroupInitErr
}

func initCgroupsImpl() error {
	if os.Geteuid() != 0 {
		return nil
	}

	if err := os.MkdirAll(cgroupRoot, 0755); err != nil {
		return err
	}

	available, err := readControllerSet(filepath.Join(cgroupRoot, "cgroup.controllers"))
	if err != nil {
		return err
	}
	enabled, err := readControllerSet(filepath.Join(cgroupRoot, "cgroup.subtree_control"))
	if err != nil {
		return err
	}

	var toAdd []string
	for _, ctrl := range []string{"cpu", "memory"} {
		if available[ctrl] && !enabled[ctrl] {
			toAdd = append(toAdd, "+"+ctrl)
		}
	}
	if len(toAdd) > 0 {
		return writeString(filepath.Join(cgroupRoot, "cgroup.subtree_control"), strings.Join(toAdd, " "))
	}
	return nil
}

func readControllerSet(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	for _, f := range strings.Fields(string(data)) {
		set[strings.TrimPrefix(f, "+")] = true
	}
	return set, nil
}

// getSysProcAttr puts the process into its own process group and, when running
// as root with cgroup v2 available, into a dedicated cgroup so that a kill
// reaches installer descendants that left the group. Any cgroup problem falls
// back to the process group alone.
func getSysProcAttr(id string, command lib.Command) *sysProcAttr {
	fallback := plainSysProcAttr(command)
	if os.Geteuid() != 0 {
		return fallback
	}

	if err := initCgroups(); err != nil {
		logger.Debugf("cgroups unavailable, using process group only: %v", err)
		return fallback
	}

	cgPath, err := setupCgroupFor(id)
	if err != nil {
		logger.Debugf("failed to set up cgroup for %s: %v", id, err)
		_ = CleanupCgroup(id)
		return fallback
	}

	f, err := os.Open(cgPath)
	if err != nil {
		logger.Debugf("failed to open cgroup %s: %v", cgPath, err)
		_ = CleanupCgroup(id)
		return fallback
	}

	return &sysProcAttr{
		file: f,
		raw: &syscall.SysProcAttr{
			Setpgid:     true,
			UseCgroupFD: true,
			CgroupFD:    int(f.Fd()),
		},
		cgroup: true,
	}
}

// plainSysProcAttr only starts a new process group.
func plainSysProcAttr(lib.Command) *sysProcAttr {
	return &sysProcAttr{raw: &syscall.SysProcAttr{Setpgid: true}}
}

// KillCgroup kills every process of the run's cgroup.
func KillCgroup(id string) (bool, error) {
	err := writeString(filepath.Join(cgroupRoot, id, "cgroup.kill"), "1")
	return err == nil, err
}

// CleanupCgroup removes the run's cgroup directory. It fails while processes
// are still attached.
func CleanupCgroup(id string) error {
	err := os.Remove(filepath.Join(cgroupRoot, id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func setupCgroupFor(processId string) (string, error) {
	processRoot := filepath.Join(cgroupRoot, processId)
	if err := os.MkdirAll(processRoot, 0755); err != nil {
		return "", err
	}

	if controllerEnabled(cgroupRoot, "memory") {
		if err := writeString(filepath.Join(processRoot, "memory.high"), fmt.Sprint(int64(512)*1024*1024)); err != nil {
			return "", err
		}
	}

	return processRoot, nil
}

func controllerEnabled(cgPath, controller string) bool {
	enabled, err := readControllerSet(filepath.Join(cgPath, "cgroup.subtree_control"))
	if err != nil {
		return false
	}
	return enabled[controller]
}

func writeString(path, val string) error {
	return os.WriteFile(path, []byte(val), 0644)
}
