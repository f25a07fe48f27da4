// Package tabular streams delimited billing exports into header-keyed rows.
// It absorbs the messiness of real practice-management exports: BOMs,
// Windows-1252 bytes, ragged rows, unpredictable header spelling.
package tabular

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Row maps a header, exactly as it appeared in the file, to the cell value
// for one record. Headers missing a cell on a short row are present with
// an empty value.
type Row map[string]string

// Source is a finite, single-pass row stream. Next returns io.EOF when
// exhausted; reopen the file to restart.
type Source interface {
	Headers() []string
	Next() (Row, error)
	Close() error
}

// IOError reports a file that could not be opened or read. It aborts the
// run.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("read %s: %s", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports a byte stream that could not be decoded as tabular
// text. Malformed individual rows never produce one; they are passed
// through best-effort with a diagnostic.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string { return fmt.Sprintf("decode %s: %s", e.Path, e.Err) }
func (e *FormatError) Unwrap() error { return e.Err }

// OpenAny opens a billing export by extension: .xlsx workbooks through the
// spreadsheet reader, everything else as delimited text.
func OpenAny(path string, log zerolog.Logger) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return OpenXLSX(path, log)
	}
	return Open(path, log)
}

// ReadAll drains src into memory and closes it.
func ReadAll(src Source) ([]Row, error) {
	defer src.Close()
	var rows []Row
	for {
		row, err := src.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

// rowFromRecord builds a Row from one record, padding short records with
// empty values so every header is present.
func rowFromRecord(headers []string, record []string) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		if i < len(record) {
			row[h] = record[i]
		} else {
			row[h] = ""
		}
	}
	return row
}
