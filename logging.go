package lyric

import (
	log "github.com/sirupsen/logrus"
)

// Component tags attached to every log entry this package emits, so a
// consumer can filter by pipeline stage.
const (
	tagParser   = "parser"
	tagAgent    = "agent"
	tagSmoother = "smoother"
	tagAdapter  = "adapter"
)

// SetLogLevel lets an embedding application raise or lower verbosity; the
// engine itself never changes the global level on its own.
func SetLogLevel(level log.Level) {
	log.SetLevel(level)
}
