package mdallog

import (
	"github.com/sirupsen/logrus"

	"github.com/mdal-go/mdal/internal/mdalerr"
)

// logrusSink adapts Sink onto a *logrus.Logger, the default sink
// cmd/mdalinfo and cmd/mdaltranslate install (spec.md §7's
// Error/Warn/Info/Debug levels map directly onto logrus's).
type logrusSink struct {
	log *logrus.Logger
}

// NewLogrusSink wraps log as a Sink. Passing nil uses logrus's
// package-level standard logger.
func NewLogrusSink(log *logrus.Logger) Sink {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return logrusSink{log: log}
}

func (s logrusSink) Log(severity mdalerr.Severity, tag, message string) {
	entry := s.log.WithField("tag", tag)
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
