package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface used across packages. It is
// satisfied by *Zap and NopLogger, and matches gunbroker.Logger.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// Zap logs each object as a single structured field named by key.
type Zap struct {
	S *zap.SugaredLogger
}

// Init builds a JSON zap logger at the given level. Logs go to w, or to
// stderr when w is nil, so stdout stays free for command output.
func Init(level string, w io.Writer) (*Zap, error) {
	if w == nil {
		w = os.Stderr
	}
	return New(level, w), nil
}

// New builds a JSON zap logger writing to w.
func New(level string, w io.Writer) *Zap {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		parseLevel(level),
	)

	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Zap{S: l.Sugar()}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Close flushes any buffered log entries.
func (z *Zap) Close() error {
	if z == nil || z.S == nil {
		return nil
	}
	return z.S.Sync()
}

// Minimal object logging helpers -------------------------------------------------
// These log the given object as a structured field named `key` and do not
// attempt to parse arbitrary kv arrays.
func (z *Zap) InfoObj(msg, key string, obj interface{}) {
	if z == nil || z.S == nil {
		return
	}
	z.S.Desugar().Info(msg, zap.Any(key, obj))
}

func (z *Zap) DebugObj(msg, key string, obj interface{}) {
	if z == nil || z.S == nil {
		return
	}
	z.S.Desugar().Debug(msg, zap.Any(key, obj))
}

func (z *Zap) WarnObj(msg, key string, obj interface{}) {
	if z == nil || z.S == nil {
		return
	}
	z.S.Desugar().Warn(msg, zap.Any(key, obj))
}

func (z *Zap) ErrorObj(msg, key string, obj interface{}) {
	if z == nil || z.S == nil {
		return
	}
	z.S.Desugar().Error(msg, zap.Any(key, obj))
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}
