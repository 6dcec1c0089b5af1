package logger

import (
	"github.com/rs/zerolog"
)

// ZerologAdapter bridges zerolog into the temporal logger interface so the
// worker and the audit core share one structured log stream.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new instance of ZerologAdapter with the provided logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Info This is the adapter function for zerolog's Info().
func (zl *ZerologAdapter) Info(msg string, kvs ...interface{}) {
	zl.logger.Info().Fields(KeyValToMap(kvs...)).Msg(msg)
}

// InfoEvent returns a pointer to a zerolog.Event for logging info messages.
func (zl *ZerologAdapter) InfoEvent() *zerolog.Event {
	return zl.logger.Info()
}

// Debug This is the adapter function for zerolog's Debug().
func (zl *ZerologAdapter) Debug(msg string, kvs ...interface{}) {
	zl.logger.Debug().Fields(KeyValToMap(kvs...)).Msg(msg)
}

// DebugEvent returns a pointer to a zerolog.Event for logging debug messages.
func (zl *ZerologAdapter) DebugEvent() *zerolog.Event {
	return zl.logger.Debug()
}

// Error This is the adapter function for zerolog's Error().
func (zl *ZerologAdapter) Error(msg string, kvs ...interface{}) {
	var e error

	f := KeyValToMap(kvs...)

	if err, ok := f["error"].(error); ok {
		e = err
		delete(f, "error")
	}
	if err, ok := f["err"].(error); ok {
		e = err
		delete(f, "err")
	}

	logEvt := zl.logger.Error()
	if e != nil {
		logEvt = logEvt.Err(e)
	}

	logEvt.Fields(f).Msg(msg)
}

// ErrorEvent returns a pointer to a zerolog.Event for logging error messages.
func (zl *ZerologAdapter) ErrorEvent() *zerolog.Event {
	return zl.logger.Error()
}

// Warn This is the adapter function for zerolog's Warn().
func (zl *ZerologAdapter) Warn(msg string, kvs ...interface{}) {
	zl.logger.Warn().Fields(KeyValToMap(kvs...)).Msg(msg)
}

// WarnEvent returns a pointer to a zerolog.Event for logging warning messages.
func (zl *ZerologAdapter) WarnEvent() *zerolog.Event {
	return zl.logger.Warn()
}

// WithContext creates a new ZerologAdapter with additional context fields.
func (zl *ZerologAdapter) WithContext(name, componentType string, params ...interface{}) *ZerologAdapter {
	lCtx := zl.logger.With().
		Str("name", name).
		Str("component", componentType)

	if params != nil {
		lCtx = lCtx.Fields(KeyValToMap(params...))
	}

	return &ZerologAdapter{logger: lCtx.Logger()}
}
