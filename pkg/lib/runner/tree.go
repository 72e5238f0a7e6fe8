package runner

import (
	"github.com/shirou/gopsutil/v3/process"
)

// descendants lists every process below pid, deepest first, so children can be
// killed before the parent gets a chance to respawn them. Lookup errors just
// end the walk for that branch.
func descendants(pid int) []*process.Process {
	root, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil
	}

	var out []*process.Process
	var walk func(p *process.Process)
	walk = func(p *process.Process) {
		children, err := p.Children()
		if err != nil {
			return
		}
		for _, c := range children {
			walk(c)
			out = append(out, c)
		}
	}
	walk(root)
	return out
}

func killDescendants(procs []*process.Process) {
	for _, p := range procs {
		if err := p.Kill(); err != nil {
			logger.Debugf("failed to kill descendant %d: %v", p.Pid, err)
		}
	}
}
