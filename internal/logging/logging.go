// Package logging wraps the standard logger with a debug switch.
package logging

import "log"

// Debug controls whether debug logs are printed.
var Debug bool

// Debugf logs a formatted debug message when Debug is enabled.
func Debugf(format string, v ...any) {
	if Debug {
		log.Printf("DEBUG: "+format, v...)
	}
}

// Warnf logs a formatted message that is always printed, used for failures
// the caller recovers from.
func Warnf(format string, v ...any) {
	log.Printf("WARN: "+format, v...)
}
