package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// DebugEnv is the environment variable that turns on debug output.
const DebugEnv = "STUDENTPRO_DEBUG"

var forced atomic.Bool

// SetDebug forces debug output on regardless of the environment.
func SetDebug(on bool) {
	forced.Store(on)
}

// DebugEnabled returns true if debug mode is enabled via SetDebug or the
// STUDENTPRO_DEBUG environment variable.
func DebugEnabled() bool {
	return forced.Load() || os.Getenv(DebugEnv) != ""
}

// Debugf logs a formatted debug message only if debug mode is enabled.
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		log.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
	}
}

// SetOutput points the standard logger at w, or at stderr when w is nil.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	log.SetOutput(w)
}
