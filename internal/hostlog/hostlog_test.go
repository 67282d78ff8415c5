package hostlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/fopscorp/nixiewatch"
	"github.com/fopscorp/nixiewatch/internal/config"
)

var _ nixiewatch.Logger = (*Logger)(nil)

func TestDebugIsGated(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debug("hidden")
	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	assert.Assert(t, !strings.Contains(buf.String(), "hidden"))
	assert.Assert(t, strings.Contains(buf.String(), "shown 2"))

	buf.Reset()
	l = New(&buf, true)
	l.Debugf("visible %s", "now")
	assert.Assert(t, strings.Contains(buf.String(), "debug: visible now"))
}

func TestOpenWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.log")
	l, c := Open(config.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 1})
	l.Info("booted")
	assert.NilError(t, c.Close())

	b, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(b), "booted"))
}
