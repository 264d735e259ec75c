// ===== internal/logging/logging.go =====
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLevel names the environment variable holding the log level
const EnvLevel = "LOGGING_LEVEL"

// DefaultLevel applies when the level is unset or unknown
const DefaultLevel = logrus.ErrorLevel

var levels = map[string]logrus.Level{
	"NOTSET":   logrus.DebugLevel,
	"DEBUG":    logrus.DebugLevel,
	"INFO":     logrus.InfoLevel,
	"WARN":     logrus.WarnLevel,
	"WARNING":  logrus.WarnLevel,
	"ERROR":    logrus.ErrorLevel,
	"CRITICAL": logrus.FatalLevel,
	"FATAL":    logrus.FatalLevel,
}

// ParseLevel maps a level name to a logrus level, falling back to DefaultLevel
func ParseLevel(name string) logrus.Level {
	if level, ok := levels[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return level
	}
	return DefaultLevel
}

// New builds the logger every component receives
func New(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(ParseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}
