// Package envpath rebuilds PATH for the running process from the persisted
// scopes an installer may have written to after this process started.
package envpath

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("component", "envpath")

// Sources reads the PATH value of each scope. An unreadable or missing scope
// yields an empty string.
type Sources interface {
	Process() string
	Registry() string
	Machine() string
	User() string
}

// Static is a fixed set of scope values.
type Static struct {
	ProcessPath  string
	RegistryPath string
	MachinePath  string
	UserPath     string
}

func (s Static) Process() string  { return s.ProcessPath }
func (s Static) Registry() string { return s.RegistryPath }
func (s Static) Machine() string  { return s.MachinePath }
func (s Static) User() string     { return s.UserPath }

type Merger struct {
	sources   Sources
	separator string
	setenv    func(key, value string) error
}

type Option func(*Merger)

// WithSeparator overrides the list separator, os.PathListSeparator by default.
func WithSeparator(sep string) Option {
	return func(m *Merger) {
		if sep != "" {
			m.separator = sep
		}
	}
}

// NewMerger returns a Merger reading from sources, or from the operating system
// scopes when sources is nil.
func NewMerger(sources Sources, opts ...Option) *Merger {
	if sources == nil {
		sources = SystemSources()
	}
	m := &Merger{
		sources:   sources,
		separator: string(os.PathListSeparator),
		setenv:    os.Setenv,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ComputeMergedPath returns the union of all scopes in the order process,
// registry, machine, user. Segments are trimmed, empty ones dropped and
// duplicates removed case-insensitively, keeping the first occurrence.
func (m *Merger) ComputeMergedPath() string {
	return Merge(m.separator,
		m.sources.Process(),
		m.sources.Registry(),
		m.sources.Machine(),
		m.sources.User(),
	)
}

// Apply sets the merged value as PATH of the current process. Persisted
// scopes are only read.
func (m *Merger) Apply() (string, error) {
	merged := m.ComputeMergedPath()
	if err := m.setenv("PATH", merged); err != nil {
		return "", err
	}
	logger.Debugf("PATH refreshed: %d entries", len(Split(merged, m.separator)))
	return merged, nil
}

// Merge unions separator-delimited lists.
func Merge(separator string, values ...string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range values {
		for _, segment := range Split(v, separator) {
			key := strings.ToLower(segment)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, segment)
		}
	}
	return strings.Join(out, separator)
}

// Split returns the trimmed, non-empty segments of value.
func Split(value, separator string) []string {
	var out []string
	for _, segment := range strings.Split(value, separator) {
		segment = strings.TrimSpace(segment)
		if segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

// dropReferences removes the segments of value that still contain marker, the
// start of a variable reference nothing will expand.
func dropReferences(value, separator, marker string) string {
	var kept []string
	for _, segment := range Split(value, separator) {
		if strings.Contains(segment, marker) {
			continue
		}
		kept = append(kept, segment)
	}
	return strings.Join(kept, separator)
}
