package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/runner"
)

// script is the canned behaviour of one command line.
type script struct {
	lines []string
	err   error
	// block, when set, holds the run until it is closed or ctx is done.
	block chan struct{}
}

type fakeExecutor struct {
	mu      sync.Mutex
	scripts map[string]script
	calls   []string
	kills   int
	started chan string
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{scripts: make(map[string]script), started: make(chan string, 16)}
}

func (f *fakeExecutor) on(cmd lib.Command, s script) *fakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[cmd.String()] = s
	return f
}

func (f *fakeExecutor) Run(ctx context.Context, cmd lib.Command, opts runner.RunOptions) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd.String())
	s, ok := f.scripts[cmd.String()]
	f.mu.Unlock()

	f.started <- cmd.String()
	if !ok {
		return "", &lib.ProcessFailure{Command: cmd.String(), ExitCode: 127}
	}

	var out strings.Builder
	for _, l := range s.lines {
		out.WriteString(l + "\n")
		if opts.OnLine != nil {
			opts.OnLine(lib.Line{Text: l})
		}
		opts.Sentinel.Observe(l, nil)
	}

	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return out.String(), ctx.Err()
		}
	}
	return out.String(), s.err
}

func (f *fakeExecutor) KillAll() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kills++
	return 0
}

func (f *fakeExecutor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeExecutor) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeReleases struct {
	latest string
	err    error
	calls  int
}

func (f *fakeReleases) Latest(context.Context) (string, error) {
	f.calls++
	return f.latest, f.err
}

type fakePath struct {
	applied int
	err     error
}

func (f *fakePath) Apply() (string, error) {
	f.applied++
	return "", f.err
}

const testSentinel = "spicetify was successfully installed!"

var (
	toolInstaller = lib.Command{Program: "powershell", Arguments: "install-tool", CaptureOutput: true, Shell: true}
	pluginCurl    = lib.Command{Program: "cmd", Arguments: "/c curl plugin | sh", CaptureOutput: true, Shell: true}
	pluginPS      = lib.Command{Program: "powershell", Arguments: "plugin-fallback", CaptureOutput: true, Shell: true}
	versionCmd    = lib.Command{Program: "spicetify", Arguments: "--version"}
	updateCmd     = lib.Command{Program: "spicetify", Arguments: "update", CaptureOutput: true}
)

func testSettings() Settings {
	return Settings{
		Tool:             "spicetify",
		Sentinel:         testSentinel,
		ToolInstaller:    toolInstaller,
		PluginName:       "Spicetify Marketplace",
		PluginInstallers: []lib.Command{pluginCurl, pluginPS},
	}
}
