package output

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/zhengtingxue/dinky/core"
)

// Page selects a range of cached rows and how they are formatted.
type Page struct {
	From         int
	To           int
	NullColumn   string
	PrintRowKind bool
	Formatter    core.Formatter
}

func (p Page) format(result *core.Result) ([]byte, error) {
	out, err := result.Format(p.Formatter, p.From, p.To, core.FormatterOptions{
		NullColumn:   p.NullColumn,
		PrintRowKind: p.PrintRowKind,
	})
	if err != nil {
		return nil, fmt.Errorf("result.Format: %w", err)
	}
	return out, nil
}

// Stream writes formatted pages to a writer.
type Stream struct {
	w io.Writer
}

func NewStream(w io.Writer) *Stream {
	return &Stream{w: w}
}

func (s *Stream) Write(result *core.Result, page Page) error {
	out, err := page.format(result)
	if err != nil {
		return err
	}

	_, err = s.w.Write(out)
	return err
}

// File writes formatted pages to a file, replacing its content.
type File struct {
	fileName string
	log      *zap.Logger
}

func NewFile(fileName string, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.L()
	}
	return &File{
		fileName: fileName,
		log:      logger,
	}
}

func (f *File) Write(result *core.Result, page Page) error {
	out, err := page.format(result)
	if err != nil {
		return err
	}

	file, err := os.Create(f.fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.Write(out); err != nil {
		return fmt.Errorf("failed to write result to %s: %w", f.fileName, err)
	}

	f.log.Info("successfully saved result", zap.String("file", f.fileName), zap.Int("bytes", len(out)))
	return nil
}
