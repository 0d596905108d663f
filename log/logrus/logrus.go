package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/cachestore"
)

var _ cachestore.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f cachestore.Fields) { l.log(logrus.DebugLevel, msg, f) }
func (l LogrusLogger) Info(msg string, f cachestore.Fields)  { l.log(logrus.InfoLevel, msg, f) }
func (l LogrusLogger) Warn(msg string, f cachestore.Fields)  { l.log(logrus.WarnLevel, msg, f) }
func (l LogrusLogger) Error(msg string, f cachestore.Fields) { l.log(logrus.ErrorLevel, msg, f) }

func (l LogrusLogger) log(level logrus.Level, msg string, f cachestore.Fields) {
	if !l.E.Logger.IsLevelEnabled(level) {
		return
	}
	e := l.E
	if len(f) > 0 {
		e = e.WithFields(logrus.Fields(f))
	}
	e.Log(level, msg)
}
