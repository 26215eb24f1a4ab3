package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zhengtingxue/dinky/internal/cli/dinkysql"
	"github.com/zhengtingxue/dinky/internal/config"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := dinkysql.Run(ctx, os.Args[1:], dinkysql.Options{
		Defaults: cfg,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	})
	stop()

	os.Exit(code)
}
