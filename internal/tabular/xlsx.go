package tabular

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// XLSXReader streams the first sheet of a workbook as a sequence of Rows.
// Some practice-management systems only export .xlsx; the first sheet row
// is treated as the header row, same contract as the CSV reader.
type XLSXReader struct {
	path    string
	file    *excelize.File
	rows    *excelize.Rows
	headers []string
	log     zerolog.Logger
}

// OpenXLSX opens a workbook and positions the stream after the header row
// of the first sheet.
func OpenXLSX(path string, log zerolog.Logger) (*XLSXReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return &XLSXReader{path: path, log: log}, nil
	}
	if len(sheets) > 1 {
		log.Debug().Str("file", path).Str("sheet", sheets[0]).
			Msg("workbook has multiple sheets, reading the first")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, &FormatError{Path: path, Err: err}
	}

	r := &XLSXReader{path: path, file: f, rows: rows, log: log}
	if rows.Next() {
		headers, err := rows.Columns()
		if err != nil {
			r.Close()
			return nil, &FormatError{Path: path, Err: err}
		}
		r.headers = headers
	}
	return r, nil
}

// Headers returns the first sheet row, case preserved. Nil for an empty
// workbook.
func (r *XLSXReader) Headers() []string {
	return r.headers
}

// Next returns the next data row, or io.EOF.
func (r *XLSXReader) Next() (Row, error) {
	if r.rows == nil || r.headers == nil {
		return nil, io.EOF
	}
	if !r.rows.Next() {
		if err := r.rows.Error(); err != nil {
			return nil, &FormatError{Path: r.path, Err: err}
		}
		return nil, io.EOF
	}
	record, err := r.rows.Columns()
	if err != nil {
		return nil, &FormatError{Path: r.path, Err: err}
	}
	return rowFromRecord(r.headers, record), nil
}

func (r *XLSXReader) Close() error {
	if r.rows != nil {
		r.rows.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
