package logging

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NamedLogger returns a decorator that names the logger.
func NamedLogger(name string) func(log *zap.Logger) *zap.Logger {
	return func(log *zap.Logger) *zap.Logger {
		return log.Named(name)
	}
}

// DecorateLogger names the *zap.Logger for the enclosing fx module,
// so log entries of e.g. the serve module carry logger=serve.
func DecorateLogger(name string) fx.Option {
	return fx.Decorate(NamedLogger(name))
}
