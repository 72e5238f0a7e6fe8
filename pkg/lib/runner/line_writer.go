package runner

import (
	"bytes"
	"strings"
	"sync"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

// lineWriter splits a byte stream into lines and forwards each complete line
// as an event. exec copies each pipe from a single goroutine, so lines of one
// stream keep their order.
type lineWriter struct {
	stream lib.Stream
	events chan<- lib.Line

	mu  sync.Mutex
	buf []byte
}

func newLineWriter(stream lib.Stream, events chan<- lib.Line) *lineWriter {
	return &lineWriter{stream: stream, events: events}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// flush emits a trailing line that had no terminator.
func (w *lineWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
}

func (w *lineWriter) emit(raw []byte) {
	text := strings.TrimRight(string(raw), "\r")
	w.events <- lib.Line{Stream: w.stream, Text: text}
}
