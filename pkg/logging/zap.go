package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is the default Logger backend built on zap
type ZapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// NewZapLogger creates a console zap logger at info level
func NewZapLogger() *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)

	return &ZapLogger{
		sugar: zap.New(core).Sugar(),
		level: level,
	}
}

func (z *ZapLogger) Debug(msg string, fields ...Fields) {
	z.sugar.Debugw(msg, flatten(fields)...)
}

func (z *ZapLogger) Info(msg string, fields ...Fields) {
	z.sugar.Infow(msg, flatten(fields)...)
}

func (z *ZapLogger) Warn(msg string, fields ...Fields) {
	z.sugar.Warnw(msg, flatten(fields)...)
}

func (z *ZapLogger) Error(err error, msg string, fields ...Fields) {
	args := flatten(fields)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	z.sugar.Errorw(msg, args...)
}

func (z *ZapLogger) Fatal(err error, msg string, fields ...Fields) {
	args := flatten(fields)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	z.sugar.Fatalw(msg, args...)
}

// WithFields returns a logger with preset fields
func (z *ZapLogger) WithFields(fields Fields) Logger {
	return &ZapLogger{
		sugar: z.sugar.With(flatten([]Fields{fields})...),
		level: z.level,
	}
}

// SetLevel sets the minimum log level
func (z *ZapLogger) SetLevel(level Level) {
	switch level {
	case DebugLevel:
		z.level.SetLevel(zapcore.DebugLevel)
	case InfoLevel:
		z.level.SetLevel(zapcore.InfoLevel)
	case WarnLevel:
		z.level.SetLevel(zapcore.WarnLevel)
	case ErrorLevel:
		z.level.SetLevel(zapcore.ErrorLevel)
	case FatalLevel:
		z.level.SetLevel(zapcore.FatalLevel)
	}
}

// flatten converts Fields maps into zap's alternating key/value form
func flatten(fields []Fields) []any {
	var args []any
	for _, fieldMap := range fields {
		for k, v := range fieldMap {
			args = append(args, k, v)
		}
	}
	return args
}
