package core_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/named-data/ndn-cxx-sub014/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestLogLevels(t *testing.T) {
	defer func() {
		core.SetConfig(nil)
		core.InitializeLogger(os.Stderr)
	}()

	var buf bytes.Buffer
	c := core.DefaultConfig()
	c.Core.LogLevel = "WARN"
	core.SetConfig(c)
	core.InitializeLogger(&buf)

	core.LogInfo("Test", "hidden")
	core.LogWarn("Test", "shown ", 42, " ", uint64(7))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[Test] shown 42 7")

	// TRACE is printed through DEBUG
	buf.Reset()
	c.Core.LogLevel = "trace"
	core.InitializeLogger(&buf)
	core.LogTrace("Test", "traced")
	core.LogDebug("Test", errors.New("boom"))
	assert.Contains(t, buf.String(), "traced")
	assert.Contains(t, buf.String(), "[Test] boom")

	buf.Reset()
	c.Core.LogLevel = "DEBUG"
	core.InitializeLogger(&buf)
	core.LogTrace("Test", "untraced")
	core.LogDebug("Test", true)
	assert.NotContains(t, buf.String(), "untraced")
	assert.Contains(t, buf.String(), "[Test] true")

	// Unknown levels fall back to INFO
	buf.Reset()
	c.Core.LogLevel = "LOUD"
	core.InitializeLogger(&buf)
	core.LogDebug("Test", "quiet")
	core.LogInfo("Test", "info")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "info")
}

func TestLoggerReportsVersion(t *testing.T) {
	defer func(version string) {
		core.Version = version
		core.SetConfig(nil)
		core.InitializeLogger(os.Stderr)
	}(core.Version)

	var buf bytes.Buffer
	c := core.DefaultConfig()
	c.Core.LogLevel = "DEBUG"
	core.SetConfig(c)
	core.Version = "1.2.3"
	core.InitializeLogger(&buf)
	assert.Contains(t, buf.String(), "[Logger] Initialized logger for version=1.2.3")

	buf.Reset()
	c.Core.LogLevel = "INFO"
	core.InitializeLogger(&buf)
	assert.NotContains(t, buf.String(), "version=")
}
