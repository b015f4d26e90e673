package sqlparser

import (
	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlintel/sqlparser/internal/utils"
)

// SetTrace sends scanner traces, normally enabled by setting SQLINTEL_DEBUG,
// to entry at trace level. nil turns tracing off.
func SetTrace(entry *logrus.Entry) {
	utils.SetTracer(entry)
}
