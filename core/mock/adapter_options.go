package mock

import (
	"context"

	"github.com/zhengtingxue/dinky/core"
)

type adapterConfig struct {
	querySideEffects map[string]func(context.Context) error
	schema           core.Schema
	jobClient        core.JobClient

	rowIteratorOptions []RowIteratorOption
}

type AdapterOption func(*adapterConfig)

func AdapterWithQuerySideEffect(statement string, sideEffect func(context.Context) error) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.querySideEffects[statement]
		if ok {
			panic("side effect already registered for statement: " + statement)
		}

		c.querySideEffects[statement] = sideEffect
	}
}

func AdapterWithSchema(schema core.Schema) AdapterOption {
	return func(c *adapterConfig) {
		c.schema = schema
	}
}

// AdapterWithJobClient attaches a job handle to every returned result.
func AdapterWithJobClient(job core.JobClient) AdapterOption {
	return func(c *adapterConfig) {
		c.jobClient = job
	}
}

func AdapterWithRowIteratorOpts(opts ...RowIteratorOption) AdapterOption {
	return func(c *adapterConfig) {
		c.rowIteratorOptions = append(c.rowIteratorOptions, opts...)
	}
}
