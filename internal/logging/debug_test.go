package logging

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv(DebugEnv, "")
	SetDebug(false)
	assert.False(t, DebugEnabled())

	t.Setenv(DebugEnv, "1")
	assert.True(t, DebugEnabled())

	t.Setenv(DebugEnv, "")
	SetDebug(true)
	defer SetDebug(false)
	assert.True(t, DebugEnabled())
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)
	flags := log.Flags()
	log.SetFlags(0)
	defer log.SetFlags(flags)

	t.Setenv(DebugEnv, "")
	SetDebug(false)
	Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)
	Debugf("shown %d", 2)
	assert.Equal(t, "DEBUG shown 2\n", buf.String())
}
