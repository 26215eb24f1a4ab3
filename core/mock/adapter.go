package mock

import (
	"context"
	"fmt"

	"github.com/zhengtingxue/dinky/core"
)

var _ core.Driver = (*driver)(nil)

type driver struct {
	data   []core.Row
	config *adapterConfig
}

func (d *driver) Query(ctx context.Context, statement string) (*core.TableResult, error) {
	eff, ok := d.config.querySideEffects[statement]
	if ok {
		err := eff(ctx)
		if err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	schema := d.config.schema
	return core.NewTableResult(core.TableResultConfig{
		JobClient: d.config.jobClient,
		Schema:    &schema,
		Kind:      core.ResultKindSuccessWithContent,
		Data:      NewRowIterator(d.data, d.config.rowIteratorOptions...),
	})
}

func (d *driver) Close() {}

var _ core.Adapter = (*Adapter)(nil)

type Adapter struct {
	data   []core.Row
	config *adapterConfig
}

// NewAdapter returns an adapter whose drivers return provided rows for every statement.
func NewAdapter(data []core.Row, opts ...AdapterOption) *Adapter {
	config := &adapterConfig{
		querySideEffects: make(map[string]func(context.Context) error),
		schema:           NewSchema(),

		rowIteratorOptions: []RowIteratorOption{},
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		data:   data,
		config: config,
	}
}

func (a *Adapter) Connect(_ string) (core.Driver, error) {
	return &driver{
		data:   a.data,
		config: a.config,
	}, nil
}
