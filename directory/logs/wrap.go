package logs

import (
	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/logs"
	"go.uber.org/zap"
)

var directoryLogger *zap.Logger

func init() {
	directoryLogger = logs.Component(consts.ComponentDirectory)
}

func Debug(msg string, fields ...zap.Field) {
	directoryLogger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	directoryLogger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	directoryLogger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	directoryLogger.Error(msg, fields...)
}
