package x

import (
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions selects the log level, the encoding and an optional rotated log
// file. An empty Dir logs to stderr.
type LogOptions struct {
	Level       string
	Development bool
	Dir         string
	Filename    string
}

// NewLogger builds the process logger. Development loggers write a console
// encoding, production loggers write JSON.
func NewLogger(opts LogOptions) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, errors.Wrapf(err, "log level %q", opts.Level)
		}
	}

	if opts.Dir == "" {
		cfg := zap.NewProductionConfig()
		if opts.Development {
			cfg = zap.NewDevelopmentConfig()
		}
		cfg.Level = level
		return cfg.Build()
	}

	filename := opts.Filename
	if filename == "" {
		filename = "wordstem.log"
	}
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename: filepath.Join(opts.Dir, filename),
		MaxSize:  100,
		MaxAge:   30,
	})
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	if opts.Development {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	return zap.New(zapcore.NewCore(encoder, writer, level)), nil
}

// Sync flushes l, ignoring the error stderr returns on some platforms.
func Sync(l *zap.Logger) {
	if l == nil {
		return
	}
	Ignore(l.Sync())
}
