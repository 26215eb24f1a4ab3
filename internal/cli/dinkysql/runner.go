package dinkysql

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zhengtingxue/dinky/adapters"
	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/format"
	"github.com/zhengtingxue/dinky/internal/config"
	"github.com/zhengtingxue/dinky/internal/logging"
	"github.com/zhengtingxue/dinky/internal/observability"
	"github.com/zhengtingxue/dinky/output"
)

type Options struct {
	Defaults config.Config
	Stdout   io.Writer
	Stderr   io.Writer
}

// Run executes a single statement and prints its result. It returns the
// process exit code.
func Run(ctx context.Context, args []string, opts Options) int {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	cfg := opts.Defaults
	statement := ""
	metricsFile := ""

	fs := flag.NewFlagSet("dinky-sql", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.Connection.Type, "type", cfg.Connection.Type, "connection type ("+strings.Join(new(adapters.Mux).Aliases(), ", ")+")")
	fs.StringVar(&cfg.Connection.URL, "url", cfg.Connection.URL, "connection url, may contain {{ env \"VAR\" }} templates")
	fs.StringVar(&statement, "statement", "", "statement to execute, read from stdin if empty")
	fs.StringVar(&cfg.Print.Style, "style", cfg.Print.Style, "print style (tableau|raw)")
	fs.IntVar(&cfg.Print.MaxColumnWidth, "max-width", cfg.Print.MaxColumnWidth, "maximum column width of the tableau style")
	fs.StringVar(&cfg.Print.NullColumn, "null", cfg.Print.NullColumn, "text printed in place of null values")
	fs.BoolVar(&cfg.Print.DeriveWidth, "derive-width", cfg.Print.DeriveWidth, "derive column width from column types")
	fs.BoolVar(&cfg.Print.PrintRowKind, "row-kind", cfg.Print.PrintRowKind, "print the row kind column")
	fs.DurationVar(&cfg.AwaitTimeout, "timeout", cfg.AwaitTimeout, "how long to wait for the first row, 0 waits forever")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	fs.StringVar(&cfg.Page.Format, "format", cfg.Page.Format, "page format (table|csv|json), prints directly if empty")
	fs.IntVar(&cfg.Page.From, "from", cfg.Page.From, "first row of the page")
	fs.IntVar(&cfg.Page.To, "to", cfg.Page.To, "end of the page, -1 is the last row")
	fs.StringVar(&cfg.Page.Output, "out", cfg.Page.Output, "file to write the page to")
	fs.StringVar(&metricsFile, "metrics-file", "", "file to write prometheus metrics to after the run")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		return 2
	}
	if cfg.Connection.Type == "" {
		_, _ = fmt.Fprintln(stderr, "connection type is required")
		fs.Usage()
		return 2
	}

	if statement == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "failed reading statement: %v\n", err)
			return 1
		}
		statement = strings.TrimSpace(string(b))
	}
	if statement == "" {
		_, _ = fmt.Fprintln(stderr, "statement is required")
		return 2
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Encoding, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "invalid logging config: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	if cfg.ArchiveDir != "" {
		_ = os.Setenv(core.ArchiveDirEnv, cfg.ArchiveDir)
	}

	r := &runner{
		cfg:    cfg,
		logger: logger,
		stdout: stdout,
	}

	runErr := r.run(ctx, statement)

	if metricsFile != "" {
		if err := observability.WriteTextfile(metricsFile); err != nil {
			logger.Warn("failed writing metrics", zap.String("file", metricsFile), zap.Error(err))
		}
	}

	if runErr != nil {
		logger.Error("statement failed", zap.Error(runErr))
		_, _ = fmt.Fprintf(stderr, "error: %v\n", runErr)
		return 1
	}

	return 0
}

type runner struct {
	cfg    config.Config
	logger *zap.Logger
	stdout io.Writer
}

func (r *runner) run(ctx context.Context, statement string) error {
	connection, err := adapters.NewConnection(&core.ConnectionParams{
		Type: r.cfg.Connection.Type,
		URL:  r.cfg.Connection.URL,
	}, r.logger)
	if err != nil {
		return fmt.Errorf("adapters.NewConnection: %w", err)
	}
	defer connection.Close()

	if r.cfg.Page.Format == "" {
		return r.print(ctx, connection, statement)
	}
	return r.page(ctx, connection, statement)
}

func (r *runner) printStyle() (core.PrintStyle, error) {
	if r.cfg.Print.Style == "raw" {
		return core.RawContentStyle(), nil
	}

	return core.TableauStyle(
		r.cfg.Print.MaxColumnWidth,
		r.cfg.Print.NullColumn,
		r.cfg.Print.DeriveWidth,
		r.cfg.Print.PrintRowKind,
	)
}

// print runs the statement and prints the lazy result as it arrives.
func (r *runner) print(ctx context.Context, connection *core.Connection, statement string) error {
	style, err := r.printStyle()
	if err != nil {
		return err
	}

	result, err := connection.Query(ctx, statement)
	if err != nil {
		return err
	}
	result = result.Restyled(style, r.stdout, logging.NewContent(r.stdout))
	defer result.Collect().Close()

	start := time.Now()
	if r.cfg.AwaitTimeout > 0 {
		err = result.AwaitTimeout(ctx, r.cfg.AwaitTimeout)
	} else {
		err = result.Await(ctx)
	}
	switch {
	case errors.Is(err, core.ErrAwaitTimeout):
		observability.ObserveAwait(time.Since(start), "timeout")
		// the job is still running, rows are printed once they come
		r.logger.Warn("first row is not ready yet", zap.Duration("timeout", r.cfg.AwaitTimeout))
	case err != nil:
		observability.ObserveAwait(time.Since(start), "interrupted")
		return fmt.Errorf("result.Await: %w", err)
	default:
		observability.ObserveAwait(time.Since(start), "ready")
	}

	return result.Print()
}

// page runs the statement as a call and writes a formatted page of the cached result.
func (r *runner) page(ctx context.Context, connection *core.Connection, statement string) error {
	call := connection.Execute(statement, func(state core.CallState, c *core.Call) {
		observability.ObserveCallState(state.String())
		r.logger.Info("call state changed",
			zap.String("call_id", string(c.GetID())),
			zap.Stringer("state", state),
		)
	})

	var timeout <-chan time.Time
	if r.cfg.AwaitTimeout > 0 {
		timer := time.NewTimer(r.cfg.AwaitTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-call.Done():
	case <-ctx.Done():
		call.Cancel()
		<-call.Done()
	case <-timeout:
		call.Cancel()
		<-call.Done()
	}

	if err := call.Err(); err != nil {
		return fmt.Errorf("call %s: %w", call.GetState(), err)
	}

	result, err := call.GetResult()
	if err != nil {
		return fmt.Errorf("call.GetResult: %w", err)
	}

	page := output.Page{
		From:         r.cfg.Page.From,
		To:           r.cfg.Page.To,
		NullColumn:   r.cfg.Print.NullColumn,
		PrintRowKind: r.cfg.Print.PrintRowKind,
		Formatter:    r.formatter(),
	}

	if r.cfg.Page.Output != "" {
		return output.NewFile(r.cfg.Page.Output, r.logger).Write(result, page)
	}
	return output.NewStream(r.stdout).Write(result, page)
}

func (r *runner) formatter() core.Formatter {
	switch r.cfg.Page.Format {
	case "csv":
		return format.NewCSV()
	case "json":
		return format.NewJSON()
	default:
		return format.NewTable(r.cfg.Print.MaxColumnWidth)
	}
}
