package sentinel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTerminator struct {
	calls int
	err   error
}

func (c *countingTerminator) Terminate() error {
	c.calls++
	return c.err
}

func TestObserveMatchesOnceCaseInsensitive(t *testing.T) {
	w := New("spicetify was successfully installed!")
	term := &countingTerminator{}

	lines := []string{
		"Downloading spicetify v2.38.3...",
		"Extracting...",
		"SPICETIFY WAS SUCCESSFULLY INSTALLED!",
		"Run spicetify -h to get started",
		"spicetify was successfully installed!",
	}

	matches := 0
	for i, line := range lines {
		if w.Observe(line, term) {
			matches++
			assert.Equal(t, 2, i)
		}
	}

	assert.Equal(t, 1, matches)
	assert.Equal(t, 1, term.calls)
	assert.True(t, w.Seen())
}

func TestObserveNoMatch(t *testing.T) {
	w := New("successfully installed")
	term := &countingTerminator{}

	assert.False(t, w.Observe("installation failed", term))
	assert.False(t, w.Seen())
	assert.Zero(t, term.calls)
}

func TestTerminateErrorIsSwallowed(t *testing.T) {
	w := New("done")
	term := &countingTerminator{err: errors.New("access denied")}

	require.True(t, w.Observe("all done", term))
	assert.True(t, w.Seen())
	assert.Equal(t, 1, term.calls)
}

func TestNilTerminatorAndNilWatcher(t *testing.T) {
	w := New("done")
	assert.True(t, w.Observe("done", nil))

	var nilWatcher *Watcher
	assert.False(t, nilWatcher.Observe("done", nil))
	assert.False(t, nilWatcher.Seen())
}

func TestEmptyPhraseNeverMatches(t *testing.T) {
	w := New("")
	assert.False(t, w.Observe("anything", nil))
	assert.False(t, w.Seen())
}
