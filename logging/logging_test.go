package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	assert := assert.New(t)
	buf := new(bytes.Buffer)
	l := New("info", buf)
	l.Debug("hidden")
	l.Info("dealt", zap.Int8("seat", 3))
	_ = l.Sync()
	out := buf.String()
	assert.NotContains(out, "hidden")
	assert.Contains(out, "dealt")
	assert.Contains(out, "seat")
	assert.Contains(out, "\tinfo\t")
}
