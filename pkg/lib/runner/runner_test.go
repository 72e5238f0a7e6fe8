//go:build !windows

package runner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/sentinel"
)

type recordingSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *recordingSink) Line(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, text)
}

func (s *recordingSink) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func newTestRunner(t *testing.T, opts ...Option) *Runner {
	t.Helper()
	r, err := NewRunner(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func shell(script string) lib.Command {
	return lib.Command{Program: "sh", Arguments: "-c " + quote(script), CaptureOutput: true}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func TestRunCollectsBothStreams(t *testing.T) {
	sink := &recordingSink{}
	r := newTestRunner(t, WithSink(sink))

	var got []lib.Line
	out, err := r.Run(context.Background(), shell("echo out; echo err 1>&2"), RunOptions{
		OnLine: func(l lib.Line) { got = append(got, l) },
	})
	require.NoError(t, err)

	assert.Contains(t, out, "out\n")
	assert.Contains(t, out, "err\n")
	assert.ElementsMatch(t, []lib.Line{{Stream: lib.Stdout, Text: "out"}, {Stream: lib.Stderr, Text: "err"}}, got)

	lines := sink.snapshot()
	assert.Contains(t, lines, "out")
	assert.Contains(t, lines, "ERROR: err")
	assert.True(t, strings.HasPrefix(lines[0], "[DEBUG] starting process: sh -c"))
	assert.Equal(t, "[DEBUG] process exited (code=0)", lines[len(lines)-1])
}

func TestRunPreservesLineOrderPerStream(t *testing.T) {
	r := newTestRunner(t)

	var got []string
	_, err := r.Run(context.Background(), shell("i=1; while [ $i -le 200 ]; do echo $i; i=$((i+1)); done"), RunOptions{
		OnLine: func(l lib.Line) { got = append(got, l.Text) },
	})
	require.NoError(t, err)

	require.Len(t, got, 200)
	assert.Equal(t, "1", got[0])
	assert.Equal(t, "200", got[199])
}

func TestRunTrailingLineWithoutNewline(t *testing.T) {
	r := newTestRunner(t)

	out, err := r.Run(context.Background(), shell("printf 'v2.38.3'"), RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "v2.38.3\n", out)
}

func TestRunNonZeroExitFails(t *testing.T) {
	r := newTestRunner(t)

	out, err := r.Run(context.Background(), shell("echo boom; exit 3"), RunOptions{})
	require.Error(t, err)

	var failure *lib.ProcessFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, 3, failure.ExitCode)
	assert.Equal(t, "boom\n", failure.Output)
	assert.Equal(t, "boom\n", out)
}

func TestRunNotRecognizedIsNotAFailure(t *testing.T) {
	r := newTestRunner(t)

	for _, code := range []string{"1", "2", "127", "255"} {
		_, err := r.Run(context.Background(),
			shell("echo \"'spicetify' IS NOT RECOGNIZED as an internal or external command\" 1>&2; exit "+code),
			RunOptions{})
		assert.NoError(t, err, "exit code %s", code)
	}
}

func TestRunSentinelKillsHungProcess(t *testing.T) {
	sink := &recordingSink{}
	r := newTestRunner(t, WithSink(sink))
	w := sentinel.New("spicetify was successfully installed!")

	started := time.Now()
	out, err := r.Run(context.Background(),
		shell("echo Installing; echo 'Spicetify was successfully installed!'; sleep 30"),
		RunOptions{Sentinel: w})
	require.NoError(t, err)

	assert.Less(t, time.Since(started), 10*time.Second)
	assert.True(t, w.Seen())
	assert.Contains(t, out, "Spicetify was successfully installed!")
	assert.Contains(t, sink.snapshot(), "[DEBUG] success marker seen, stopping process")
}

func TestRunSentinelExcusesNonZeroExit(t *testing.T) {
	r := newTestRunner(t)
	w := sentinel.New("installed!")

	_, err := r.Run(context.Background(), shell("echo 'installed!'; exit 1"), RunOptions{Sentinel: w})
	assert.NoError(t, err)
	assert.True(t, w.Seen())
}

func TestRunWithoutSentinelMatchStillFails(t *testing.T) {
	r := newTestRunner(t)
	w := sentinel.New("installed!")

	_, err := r.Run(context.Background(), shell("echo 'download failed'; exit 1"), RunOptions{Sentinel: w})
	var failure *lib.ProcessFailure
	assert.True(t, errors.As(err, &failure))
	assert.False(t, w.Seen())
}

func TestRunStartFailure(t *testing.T) {
	r := newTestRunner(t)

	_, err := r.Run(context.Background(), lib.Command{Program: "sau-definitely-missing-binary"}, RunOptions{})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = r.Run(context.Background(), lib.Command{}, RunOptions{})
	assert.Error(t, err)
}

func TestRunUnbalancedQuotes(t *testing.T) {
	r := newTestRunner(t)

	_, err := r.Run(context.Background(), lib.Command{Program: "sh", Arguments: `-c "echo`}, RunOptions{})
	assert.Error(t, err)
}

func TestRunContextCancelTerminates(t *testing.T) {
	r := newTestRunner(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err := r.Run(ctx, shell("sleep 30"), RunOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(started), 10*time.Second)
}

func TestCaptureOutputFalseKeepsSinkQuiet(t *testing.T) {
	sink := &recordingSink{}
	r := newTestRunner(t, WithSink(sink))

	cmd := shell("echo 2.38.3")
	cmd.CaptureOutput = false
	out, err := r.Run(context.Background(), cmd, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "2.38.3\n", out)

	for _, l := range sink.snapshot() {
		assert.True(t, strings.HasPrefix(l, "[DEBUG] "), "unexpected sink line %q", l)
	}
}

func TestShellRunKillsPreviousShell(t *testing.T) {
	sink := &recordingSink{}
	r := newTestRunner(t, WithSink(sink))

	first := shell("sleep 30")
	first.Shell = true
	proc, err := r.Start(first, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, lib.ProcessStateRunning, proc.entry.lockAndGetStatus().State)

	second := shell("echo second")
	second.Shell = true
	_, err = r.Run(context.Background(), second, RunOptions{})
	require.NoError(t, err)

	st := proc.Wait()
	require.NotNil(t, st.ExitCode)
	assert.NotEqual(t, 0, *st.ExitCode)

	assert.Contains(t, sink.snapshot(), "[DEBUG] killed old process")
	require.Equal(t, 1, r.registry.Len())
	assert.NotEqual(t, proc.ID(), r.registry.Current().ID())
}

func TestStartAndWait(t *testing.T) {
	r := newTestRunner(t)

	proc, err := r.Start(shell("echo out; sleep 0.1; echo err 1>&2"), RunOptions{})
	require.NoError(t, err)
	st := proc.entry.lockAndGetStatus()
	if st.State != lib.ProcessStateRunning {
		t.Fatalf("expected initial state Running, got %v", st.State)
	}
	if st.ExitCode != nil {
		t.Fatalf("expected no exit code at start")
	}

	st = proc.Wait()
	if proc.Output() != "out\nerr\n" {
		t.Fatalf("unexpected output %q", proc.Output())
	}
	if st.ExitCode == nil || *st.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %v", st.ExitCode)
	}
	if st.EndTime == nil {
		t.Fatalf("expected end time after completion")
	}
	assert.Equal(t, lib.ProcessStateStopped, st.State)
}

func TestOutputIsReadableWhileRunning(t *testing.T) {
	r := newTestRunner(t)

	proc, err := r.Start(shell("echo first; sleep 30"), RunOptions{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return proc.Output() == "first\n"
	}, 5*time.Second, 10*time.Millisecond)

	_, err = proc.Stop()
	require.NoError(t, err)
	proc.Wait()
	assert.Equal(t, "first\n", proc.Output())
}

func TestStopKillsProcess(t *testing.T) {
	r := newTestRunner(t)

	proc, err := r.Start(shell("sleep 10"), RunOptions{})
	require.NoError(t, err)

	started := time.Now()
	st, err := proc.Stop()
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 5*time.Second)
	assert.Equal(t, lib.ProcessStateStopped, st.State)
	if st.ExitCode == nil {
		t.Fatalf("expected exit code set after Stop")
	}

	// stopping again is a no-op
	st, err = proc.Stop()
	assert.NoError(t, err)
	assert.Equal(t, lib.ProcessStateStopped, st.State)
}

func TestFinishedProcessesAreForgotten(t *testing.T) {
	r := newTestRunner(t)

	proc, err := r.Start(shell("sleep 30"), RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, r.live())

	for i := 0; i < 3; i++ {
		_, err := r.Run(context.Background(), shell("echo done"), RunOptions{})
		require.NoError(t, err)
	}
	_, _ = r.Run(context.Background(), shell("exit 2"), RunOptions{})
	assert.Equal(t, 1, r.live())

	_, err = proc.Stop()
	require.NoError(t, err)
	proc.Wait()
	assert.Equal(t, 0, r.live())
}

func TestCloseStopsLiveProcesses(t *testing.T) {
	r, err := NewRunner()
	require.NoError(t, err)

	proc, err := r.Start(shell("sleep 30"), RunOptions{})
	require.NoError(t, err)

	require.NoError(t, r.Close())

	select {
	case <-proc.entry.done:
	case <-time.After(5 * time.Second):
		t.Fatal("process survived Close")
	}
}

func TestMetricsCountRuns(t *testing.T) {
	r := newTestRunner(t)

	_, _ = r.Run(context.Background(), shell("exit 0"), RunOptions{})
	_, _ = r.Run(context.Background(), shell("exit 4"), RunOptions{})

	var b strings.Builder
	r.WriteMetrics(&b)
	assert.Contains(t, b.String(), "counter runs.started")
	assert.Equal(t, int64(2), r.started.Count())
	assert.Equal(t, int64(1), r.failed.Count())
}
