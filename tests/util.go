package testutil

import (
	"testing"

	"github.com/fineduca/backend/core"
)

// Logger returns a core.Logger that writes through the test's log.
func Logger(t *testing.T) core.Logger {
	return testLogger{t}
}

type testLogger struct {
	t *testing.T
}

func (l testLogger) print(level, msg string, args []interface{}) {
	l.t.Helper()
	l.t.Logf("%s: %s %v", level, msg, args)
}

func (l testLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.print("FATAL", msg, args); l.t.FailNow() }
