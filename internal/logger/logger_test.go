package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("chatty"))
}

func TestWrapCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := Wrap(zap.New(core)).With(zap.String("component", "test"))

	log.Debug("dropped")
	log.Info("kept", zap.Int("n", 1))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "kept", entries[0].Message)
		ctx := entries[0].ContextMap()
		assert.Equal(t, "test", ctx["component"])
		assert.EqualValues(t, 1, ctx["n"])
	}
}

func TestNewZapLoggerWithFileSink(t *testing.T) {
	log := NewZapLogger(&ZapLoggerConfig{
		Encoding: "json",
		Level:    "info",
		Filename: t.TempDir() + "/bao.log",
	})
	log.Info("hello")
	_ = log.Sync()
}
