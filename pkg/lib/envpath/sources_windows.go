package envpath

import (
	"os"

	"golang.org/x/sys/windows/registry"
)

const (
	machineEnvKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
	userEnvKey    = `Environment`
)

type systemSources struct{}

// SystemSources reads the machine and user PATH from the Windows registry.
func SystemSources() Sources {
	return systemSources{}
}

func (systemSources) Process() string {
	return os.Getenv("PATH")
}

// Registry is the machine value as stored. Segments still holding a %VAR%
// reference are dropped; their expanded form comes from Machine.
func (systemSources) Registry() string {
	v, _ := readPath(registry.LOCAL_MACHINE, machineEnvKey, false)
	return dropReferences(v, ";", "%")
}

func (systemSources) Machine() string {
	v, _ := readPath(registry.LOCAL_MACHINE, machineEnvKey, true)
	return v
}

func (systemSources) User() string {
	v, _ := readPath(registry.CURRENT_USER, userEnvKey, true)
	return v
}

func readPath(root registry.Key, path string, expand bool) (string, error) {
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		logger.Debugf("open %s: %v", path, err)
		return "", err
	}
	defer k.Close()

	v, valType, err := k.GetStringValue("Path")
	if err != nil {
		logger.Debugf("read Path from %s: %v", path, err)
		return "", err
	}
	if expand && valType == registry.EXPAND_SZ {
		expanded, err := registry.ExpandString(v)
		if err != nil {
			return v, nil
		}
		return expanded, nil
	}
	return v, nil
}
