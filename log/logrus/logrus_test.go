package logrus

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/cachestore"
)

func TestLogrusLogger(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := LogrusLogger{E: logrus.NewEntry(base)}

	l.Debug("scan: keys vanished before read", cachestore.Fields{"dropped": 2})
	l.Error("x", nil)

	require.Len(t, hook.AllEntries(), 2)
	first := hook.AllEntries()[0]
	assert.Equal(t, logrus.DebugLevel, first.Level)
	assert.Equal(t, 2, first.Data["dropped"])
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
