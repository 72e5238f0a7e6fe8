//go:build !windows

package envpath

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var machineEnvFile = "/etc/environment"

type systemSources struct{}

// SystemSources reads PATH from /etc/environment for the machine scope and
// from systemd user environment.d files for the user scope. There is no
// registry on unix.
func SystemSources() Sources {
	return systemSources{}
}

func (systemSources) Process() string {
	return os.Getenv("PATH")
}

func (systemSources) Registry() string {
	return ""
}

func (systemSources) Machine() string {
	return readEnvFile(machineEnvFile)
}

func (systemSources) User() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	files, _ := filepath.Glob(filepath.Join(dir, "environment.d", "*.conf"))
	sort.Strings(files)

	var values []string
	for _, f := range files {
		if v := readEnvFile(f); v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, string(os.PathListSeparator))
}

func readEnvFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	return parsePath(f)
}

// parsePath extracts the last PATH assignment of a KEY=value file. Segments
// referencing other variables are dropped since nothing expands them here.
func parsePath(r io.Reader) string {
	var value string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "export ")
		if !strings.HasPrefix(line, "PATH=") {
			continue
		}
		value = strings.Trim(strings.TrimPrefix(line, "PATH="), `"'`)
	}

	return dropReferences(value, ":", "$")
}
