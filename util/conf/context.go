package conf

import (
	"context"
	"errors"
)

type contextKey int

var configKey = contextKey(1)

var (
	ErrNoConfigInContext = errors.New("config not found in context")
	ErrInvalidConfig     = errors.New("invalid config in context")
)

// GetConfigFromContext returns the config of type C stored by
// ContextWithConfig.
func GetConfigFromContext[C any](ctx context.Context) (C, error) {
	var c C

	configValue := ctx.Value(configKey)
	if configValue == nil {
		return c, ErrNoConfigInContext
	}

	config, ok := configValue.(C)
	if !ok {
		return c, ErrInvalidConfig
	}

	return config, nil
}

func ContextWithConfig[C any](ctx context.Context, config C) context.Context {
	return context.WithValue(ctx, configKey, config)
}
