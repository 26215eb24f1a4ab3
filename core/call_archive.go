package core

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

func init() {
	// gob doesn't know how to encode/decode time otherwise
	gob.Register(time.Time{})
}

// ArchiveDirEnv overrides the directory where call results are archived.
const ArchiveDirEnv = "DINKY_ARCHIVE_DIR"

const archiveChunkSize = 500

func archiveBasePath() string {
	if dir := os.Getenv(ArchiveDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "dinky-history")
}

// these variables create a file name for a specified type
var (
	archiveDir = func(callID CallID) string {
		return filepath.Join(archiveBasePath(), string(callID))
	}

	schemaFile = func(callID CallID) string {
		return filepath.Join(archiveDir(callID), "schema.gob")
	}
	kindFile = func(callID CallID) string {
		return filepath.Join(archiveDir(callID), "kind.gob")
	}
	rowFile = func(callID CallID, i int) string {
		return filepath.Join(archiveDir(callID), fmt.Sprintf("row_%d.gob", i))
	}
)

type archive struct {
	id       CallID
	isFilled bool
}

func newArchive(id CallID) *archive {
	isFilled := true
	_, err := os.Stat(archiveDir(id))
	if os.IsNotExist(err) {
		isFilled = false
	}
	return &archive{
		id:       id,
		isFilled: isFilled,
	}
}

func (a *archive) isEmpty() bool {
	return !a.isFilled
}

func writeGob(path string, value any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer file.Close()

	err = gob.NewEncoder(file).Encode(value)
	if err != nil {
		return fmt.Errorf("encoder.Encode: %w", err)
	}
	return nil
}

func readGob(path string, value any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	err = gob.NewDecoder(file).Decode(value)
	if err != nil {
		return fmt.Errorf("decoder.Decode: %w", err)
	}
	return nil
}

// setResult stores the cached result to disk as a set of gob files:
//
//	schema.gob - schema fields
//	kind.gob   - result kind
//	row_n.gob  - n-th chunk of rows
func (a *archive) setResult(result *Result) error {
	if a.isFilled {
		return nil
	}

	err := os.MkdirAll(archiveDir(a.id), os.ModePerm)
	if err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	err = writeGob(schemaFile(a.id), result.Schema().Fields())
	if err != nil {
		return err
	}
	err = writeGob(kindFile(a.id), result.Kind())
	if err != nil {
		return err
	}

	length := result.Len()

	// write chunks concurrently
	g := &errgroup.Group{}
	g.SetLimit(10)
	for i := 0; i*archiveChunkSize < length; i++ {
		i := i
		g.Go(func() error {
			chunkStart := archiveChunkSize * i
			chunkEnd := min(archiveChunkSize*(i+1), length)

			chunk, err := result.Rows(chunkStart, chunkEnd)
			if err != nil {
				return err
			}

			return writeGob(rowFile(a.id, i), chunk)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.isFilled = true

	return nil
}

// getResult loads the archived result as a table result.
func (a *archive) getResult() (*TableResult, error) {
	if !a.isFilled {
		return nil, errors.New("archive does not contain a result")
	}

	var fields []Field
	err := readGob(schemaFile(a.id), &fields)
	if err != nil {
		return nil, err
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, fmt.Errorf("NewSchema: %w", err)
	}

	var kind ResultKind
	err = readGob(kindFile(a.id), &kind)
	if err != nil {
		return nil, err
	}

	return NewTableResult(TableResultConfig{
		Schema: &schema,
		Kind:   kind,
		Data:   &archiveRows{id: a.id},
	})
}

var _ RowIterator = (*archiveRows)(nil)

// archiveRows reads archived chunks one file at a time.
type archiveRows struct {
	id    CallID
	file  int
	chunk []Row
	index int
	err   error
}

func (r *archiveRows) HasNext() bool {
	for r.index >= len(r.chunk) {
		if r.err != nil {
			return false
		}
		if _, err := os.Stat(rowFile(r.id, r.file)); err != nil {
			return false
		}

		var chunk []Row
		err := readGob(rowFile(r.id, r.file), &chunk)
		if err != nil {
			r.err = err
			// let Next report the error
			return true
		}

		r.chunk = chunk
		r.index = 0
		r.file++
	}
	return true
}

func (r *archiveRows) Next() (Row, error) {
	if r.err != nil {
		return Row{}, r.err
	}
	if !r.HasNext() {
		return Row{}, ErrNoNextRow
	}

	row := r.chunk[r.index]
	r.index++
	return row, nil
}

func (r *archiveRows) Close() {
	r.chunk = nil
	r.index = 0
	r.file = -1
}
