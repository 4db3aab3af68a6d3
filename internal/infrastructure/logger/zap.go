package logger

import (
	"fmt"

	"design-eval/internal/application/port/output"

	"go.uber.org/zap"
)

var _ output.LoggerPort = (*ZapAdapter)(nil)

type ZapAdapter struct {
	sugar *zap.SugaredLogger
}

func New(level string) (*ZapAdapter, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = parsed
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &ZapAdapter{sugar: l.Sugar()}, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *ZapAdapter {
	return &ZapAdapter{sugar: zap.NewNop().Sugar()}
}

func (z *ZapAdapter) Debug(msg string, args ...any) { z.sugar.Debugw(msg, args...) }
func (z *ZapAdapter) Info(msg string, args ...any)  { z.sugar.Infow(msg, args...) }
func (z *ZapAdapter) Warn(msg string, args ...any)  { z.sugar.Warnw(msg, args...) }
func (z *ZapAdapter) Error(msg string, args ...any) { z.sugar.Errorw(msg, args...) }

func (z *ZapAdapter) WithField(key string, value any) output.LoggerPort {
	return &ZapAdapter{sugar: z.sugar.With(key, value)}
}

func (z *ZapAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &ZapAdapter{sugar: z.sugar.With(args...)}
}

func (z *ZapAdapter) Close() error {
	// Sync fails on stderr on some platforms, which is not actionable.
	_ = z.sugar.Sync()
	return nil
}
