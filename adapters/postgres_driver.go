package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/builders"
)

var _ core.Driver = (*postgresDriver)(nil)

type postgresDriver struct {
	c *builders.Client
}

func (d *postgresDriver) Query(ctx context.Context, query string) (*core.TableResult, error) {
	if isModification(query) && !strings.Contains(strings.ToLower(query), " returning ") {
		return execOnce(ctx, d.c, query)
	}

	return d.c.Query(ctx, query)
}

func (d *postgresDriver) Close() {
	d.c.Close()
}

// isModification reports whether the statement is a plain data modification.
func isModification(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "insert", "update", "delete":
		return true
	default:
		return false
	}
}

// execOnce executes the statement on a short lived connection.
func execOnce(ctx context.Context, c *builders.Client, query string) (*core.TableResult, error) {
	con, err := c.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.Conn: %w", err)
	}
	defer con.Close()

	return con.Exec(ctx, query)
}
