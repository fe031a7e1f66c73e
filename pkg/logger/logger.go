// Package logger configures the process-wide structured logger.
package logger

import "github.com/sirupsen/logrus"

// New returns a JSON-formatted logger at the given level. Unparseable
// levels fall back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}
