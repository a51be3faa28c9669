package monitoring

import "log"

// Logf is the package-level diagnostic logger used by command-line tools.
// It defaults to log.Printf and may be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil sets a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// RunLogf returns a logger that tags every line with a simulation run ID
// before handing it to the current Logf.
func RunLogf(runID string) func(format string, v ...interface{}) {
	return func(format string, v ...interface{}) {
		Logf("[run %s] "+format, append([]interface{}{runID}, v...)...)
	}
}
