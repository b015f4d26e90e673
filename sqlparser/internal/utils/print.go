package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var tracer *logrus.Entry

func init() {
	if _, ok := os.LookupEnv("SQLINTEL_DEBUG"); ok {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.TraceLevel)
		tracer = logger.WithField("component", "sqlparser")
	}
}

// SetTracer sends scanner traces to entry; nil turns tracing off.
func SetTracer(entry *logrus.Entry) {
	tracer = entry
}

// DPrint logs a scanner trace at trace level. Off unless SQLINTEL_DEBUG is
// set or SetTracer was called. Never writes to stdout, which the serve
// command uses for its protocol.
func DPrint(format string, a ...any) {
	if tracer == nil {
		return
	}
	tracer.Tracef(format, a...)
}
