// Package notify is the user-feedback channel: transient, non-fatal
// notices about failed backend calls and the like. Nothing here retries
// or escalates; the worst case is always recoverable by the user.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}

// LogNotifier emits notifications through the structured log. The HTTP
// layer additionally mirrors them into response payloads.
type LogNotifier struct {
	log *logrus.Entry
}

func NewLogNotifier(log *logrus.Entry) *LogNotifier {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, level Level, message string) {
	entry := n.log.WithField("notification", level)
	switch level {
	case LevelError:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}
