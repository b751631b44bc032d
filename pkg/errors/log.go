package errors

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger replaces the logger used by LogHandler instances that have no
// logger of their own. Passing nil installs a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// LogHandler is an ErrorHandler that writes errors to a zap logger.
type LogHandler struct {
	// Logger overrides the package logger when set.
	Logger *zap.Logger
	// Verbose enables stack traces in the output.
	Verbose bool
}

func (h *LogHandler) log() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logger.Load()
}

// HandleError logs an AnimationError. Value errors are expected in normal
// operation and are logged at debug level; everything else is a warning.
func (h *LogHandler) HandleError(err *AnimationError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Name != "" {
		fields = append(fields, zap.String("name", err.Name))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	if err.Kind == KindValue {
		h.log().Debug("animation error", fields...)
		return
	}
	h.log().Warn("animation error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.log().Error("animation panic", fields...)
}
