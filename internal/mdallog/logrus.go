package mdallog

import (
	"github.com/sirupsen/logrus"

	"github.com/mdal-go/mdal/internal/mdalerr"
)

// LogrusSink adapts a *logrus.Logger to the Sink interface, mapping
// spec.md §7's four severities onto logrus's levels.
type LogrusSink struct {
	Logger *logrus.Logger
}

// NewLogrusSink wraps logger (or logrus.StandardLogger() if nil).
func NewLogrusSink(logger *logrus.Logger) *LogrusSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusSink{Logger: logger}
}

func (s *LogrusSink) Log(severity mdalerr.Severity, tag, message string) {
	entry := s.Logger.WithField("driver", tag)
	switch severity {
	case mdalerr.SeverityError:
		entry.Error(message)
	case mdalerr.SeverityWarn:
		entry.Warn(message)
	case mdalerr.SeverityInfo:
		entry.Info(message)
	default:
		entry.Debug(message)
	}
}
