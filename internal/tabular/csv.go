package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

// Reader streams one CSV file as a sequence of Rows.
type Reader struct {
	path    string
	file    *os.File
	csv     *csv.Reader
	headers []string
	rowNum  int64
	log     zerolog.Logger

	warnedExtra bool
}

// Open opens a CSV file and reads its header row. A UTF-8 BOM is skipped;
// streams that are not valid UTF-8 are decoded as Windows-1252, the usual
// culprit in practice-management exports. Binary content yields a
// FormatError, a missing or unreadable path an IOError.
func Open(path string, log zerolog.Logger) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	br := bufio.NewReaderSize(f, 64*1024)
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		br.Discard(3)
	}

	var src io.Reader = br
	if sample, err := br.Peek(sniffSize); err == nil || err == io.EOF {
		if bytes.IndexByte(sample, 0) >= 0 {
			f.Close()
			return nil, &FormatError{Path: path, Err: errors.New("binary content (NUL bytes)")}
		}
		if !utf8.Valid(trimPartialRune(sample)) {
			log.Debug().Str("file", path).Msg("input is not valid UTF-8, decoding as Windows-1252")
			src = transform.NewReader(br, charmap.Windows1252.NewDecoder())
		}
	}

	cr := csv.NewReader(src)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	r := &Reader{path: path, file: f, csv: cr, log: log}

	headers, err := cr.Read()
	switch {
	case err == io.EOF:
		// Empty file: zero headers, zero rows.
	case err != nil:
		f.Close()
		return nil, &FormatError{Path: path, Err: err}
	default:
		r.headers = headers
		r.rowNum = 1
	}

	return r, nil
}

// trimPartialRune drops a trailing incomplete UTF-8 sequence so a rune cut
// off by the sniff window is not mistaken for invalid encoding.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < 3 && len(b) > 0; i++ {
		r, size := utf8.DecodeLastRune(b)
		if r != utf8.RuneError || size != 1 {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}

// Headers returns the header row as it appeared in the file, case
// preserved. Nil for an empty file.
func (r *Reader) Headers() []string {
	return r.headers
}

// Next returns the next data row, or io.EOF. Rows the CSV parser rejects
// are logged and skipped, never dropped silently; short rows fill missing
// headers with empty strings and extra trailing cells are dropped with a
// one-time diagnostic.
func (r *Reader) Next() (Row, error) {
	if r.headers == nil {
		return nil, io.EOF
	}
	for {
		record, err := r.csv.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		r.rowNum++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				r.log.Warn().Err(err).Int64("row", r.rowNum).Str("file", r.path).
					Msg("malformed row skipped")
				continue
			}
			return nil, &FormatError{Path: r.path, Err: err}
		}
		if len(record) > len(r.headers) && !r.warnedExtra {
			r.warnedExtra = true
			r.log.Warn().Int64("row", r.rowNum).Str("file", r.path).
				Msg("rows carry more cells than the header row; extras ignored")
		}
		return rowFromRecord(r.headers, record), nil
	}
}

func (r *Reader) Close() error {
	return r.file.Close()
}
