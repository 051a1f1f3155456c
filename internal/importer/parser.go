package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseError is a job-fatal failure of the tabular parser. When it occurs
// zero rows are processed and the result carries exactly one error entry.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("file parsing error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseRows turns raw comma-delimited text into an ordered sequence of
// header-keyed rows.
//
// The first line is the header; its trimmed cell values become the keys
// for every subsequent row, in file order. Blank lines are skipped and do
// not count toward row numbers or totals. Rows shorter than the header get
// empty strings for the missing trailing columns; extra cells are ignored.
// Only structural CSV errors (unbalanced quoting and the like) fail the
// parse; they are returned as a *ParseError and no rows are produced.
func ParseRows(text string) ([]RawRow, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	var header []string
	rows := []RawRow{}
	for _, rec := range records {
		if isBlankLine(rec) {
			continue
		}
		if header == nil {
			header = make([]string, len(rec))
			for i, h := range rec {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}

		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				values[col] = rec[i]
			} else {
				values[col] = ""
			}
		}
		rows = append(rows, RawRow{
			Number:  len(rows) + 2,
			Columns: header,
			Values:  values,
		})
	}

	if header == nil {
		return nil, &ParseError{Err: fmt.Errorf("file is empty")}
	}
	return rows, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SanitizeUTF8 strips a leading byte-order mark and replaces invalid byte
// sequences with the Unicode replacement character. Windows exports
// commonly carry a BOM; left in place it would glue itself onto the first
// header name and break exact column matching.
func SanitizeUTF8(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}
	return buf.Bytes()
}
