// Package console holds the display sink that receives every line produced by
// external processes plus lifecycle markers.
package console

import (
	"fmt"
	"io"
	"sync"
)

const (
	// ErrorPrefix marks lines read from a process' stderr.
	ErrorPrefix = "ERROR: "
	// DebugPrefix marks synthetic lifecycle lines.
	DebugPrefix = "[DEBUG] "
)

// Sink receives display lines. Implementations must be safe for use from a
// single goroutine at a time; the runner never calls a sink concurrently.
type Sink interface {
	Line(text string)
}

type nop struct{}

func (nop) Line(string) {}

// Nop discards everything. It is the sink of headless runs and tests.
var Nop Sink = nop{}

// WriterSink writes each line to an io.Writer.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Line(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.w, text)
}

// Debugf emits a lifecycle marker.
func Debugf(sink Sink, format string, args ...any) {
	if sink == nil {
		return
	}
	sink.Line(DebugPrefix + fmt.Sprintf(format, args...))
}

// OrNop returns sink, or Nop if sink is nil.
func OrNop(sink Sink) Sink {
	if sink == nil {
		return Nop
	}
	return sink
}
