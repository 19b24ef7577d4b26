package logger

import (
	"go.uber.org/zap"
)

// LoggerAdapter hands each component the logger for its category. Without a
// MultiLogger every category falls back to the general logger.
type LoggerAdapter struct {
	general     *zap.Logger
	multiLogger *MultiLogger
}

// NewLoggerAdapter creates a new logger adapter. multiLogger may be nil.
func NewLoggerAdapter(general *zap.Logger, multiLogger *MultiLogger) *LoggerAdapter {
	if general == nil {
		general = zap.NewNop()
	}
	return &LoggerAdapter{
		general:     general,
		multiLogger: multiLogger,
	}
}

// General returns the process-wide console logger
func (la *LoggerAdapter) General() *zap.Logger {
	return la.general
}

// Dispatch returns the dispatch logger
func (la *LoggerAdapter) Dispatch() *zap.Logger {
	if la.multiLogger != nil {
		return la.multiLogger.Dispatch()
	}
	return la.general
}

// Error returns the error logger
func (la *LoggerAdapter) Error() *zap.Logger {
	if la.multiLogger != nil {
		return la.multiLogger.Error()
	}
	return la.general
}

// LogDispatchEvent records a dispatch event in the dispatch category
func (la *LoggerAdapter) LogDispatchEvent(event string, fields ...zap.Field) {
	la.Dispatch().Info(event, fields...)
}

// LogError logs an error to both the general and error logs
func (la *LoggerAdapter) LogError(msg string, fields ...zap.Field) {
	la.general.Error(msg, fields...)
	if la.multiLogger != nil {
		la.multiLogger.LogAppError(msg, fields...)
	}
}

// Sync flushes all loggers
func (la *LoggerAdapter) Sync() error {
	err := la.general.Sync()
	if la.multiLogger != nil {
		if mErr := la.multiLogger.Sync(); mErr != nil {
			err = mErr
		}
	}
	return err
}

// GetMultiLogger returns the underlying multi-logger (if available)
func (la *LoggerAdapter) GetMultiLogger() *MultiLogger {
	return la.multiLogger
}
