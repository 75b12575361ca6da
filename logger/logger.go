package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugaredLogger = zap.NewNop().Sugar()

// Init builds the process logger. level is one of debug, info, warn, error;
// anything else falls back to info.
func Init(level string) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	zapCfg.EncoderConfig.TimeKey = "time"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}
	sugaredLogger = l.Sugar()
}

func Debug(args ...any)                   { sugaredLogger.Debug(args...) }
func Debugf(template string, args ...any) { sugaredLogger.Debugf(template, args...) }
func Info(args ...any)                    { sugaredLogger.Info(args...) }
func Infof(template string, args ...any)  { sugaredLogger.Infof(template, args...) }
func Warn(args ...any)                    { sugaredLogger.Warn(args...) }
func Warnf(template string, args ...any)  { sugaredLogger.Warnf(template, args...) }
func Error(args ...any)                   { sugaredLogger.Error(args...) }
func Errorf(template string, args ...any) { sugaredLogger.Errorf(template, args...) }
func Fatal(args ...any)                   { sugaredLogger.Fatal(args...) }
func Fatalf(template string, args ...any) { sugaredLogger.Fatalf(template, args...) }

func Sync() {
	_ = sugaredLogger.Sync()
}
