package pipeline

import (
	"fmt"
	"strings"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/console"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/output_storage"
)

// transcript collects everything a pipeline produced: process output and the
// pipeline's own messages. Messages are also shown on the sink; process output
// already reached it through the runner.
type transcript struct {
	storage *output_storage.OutputStorage
	sink    console.Sink
}

func newTranscript(sink console.Sink) *transcript {
	return &transcript{
		storage: output_storage.NewOutputStorage(),
		sink:    console.OrNop(sink),
	}
}

func (t *transcript) output(out string) {
	if out == "" {
		return
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	t.storage.Append([]byte(out))
}

func (t *transcript) notef(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(t.storage, msg)
	t.sink.Line(msg)
}

// finish returns everything collected so far. Notes added afterwards are kept
// and show up in the next call.
func (t *transcript) finish() string {
	return t.storage.String()
}
