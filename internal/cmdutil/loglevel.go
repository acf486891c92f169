package cmdutil

import "github.com/rs/zerolog"

// LogLevel maps the log-level flag value to a zerolog level.
// Unrecognized names fall back to info, the application default.
func LogLevel(name string) zerolog.Level {
	switch name {
	case zerolog.LevelDebugValue, zerolog.LevelTraceValue:
		return zerolog.DebugLevel
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return zerolog.ErrorLevel
	case zerolog.LevelWarnValue:
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}
