package builders

import (
	"strings"

	"go.uber.org/zap"
)

type clientConfig struct {
	typeProcessors map[string]func(any) any
	logger         *zap.Logger
}

type ClientOption func(*clientConfig)

// WithCustomTypeProcessor converts values of a database type before they are added to a row.
func WithCustomTypeProcessor(typ string, fn func(any) any) ClientOption {
	return func(cc *clientConfig) {
		t := strings.ToLower(typ)
		_, ok := cc.typeProcessors[t]
		if ok {
			// processor already registered for this type
			return
		}

		cc.typeProcessors[t] = fn
	}
}

// WithLogger sets the logger used by results of the client.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(cc *clientConfig) {
		if logger != nil {
			cc.logger = logger
		}
	}
}
