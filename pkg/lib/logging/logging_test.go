package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLog(t *testing.T) {
	prevOut, prevLevel := log.StandardLogger().Out, log.GetLevel()
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetLevel(prevLevel)
	})

	assert.Error(t, InitLog("loud", ""))

	require.NoError(t, InitLog("debug", "console"))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	path := filepath.Join(t.TempDir(), "sau.log")
	require.NoError(t, InitLog("info", path))
	log.Info("hello")
	if c, ok := log.StandardLogger().Out.(io.Closer); ok {
		defer c.Close()
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
