// Package monitoring holds the diagnostic loggers shared by the reduction
// pipeline.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf receives per-file parse notes (dropped trailing samples, skipped
// entries). It is silent until EnableDebug is called.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// EnableDebug routes Debugf through Logf when on is true and mutes it otherwise.
func EnableDebug(on bool) {
	if !on {
		Debugf = func(string, ...interface{}) {}
		return
	}
	Debugf = func(format string, v ...interface{}) {
		Logf("debug: "+format, v...)
	}
}
