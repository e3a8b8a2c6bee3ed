package seeder

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"iter"
	"strings"
)

// Record maps a lower-cased header name to the trimmed field value of one row
type Record map[string]string

// Rows returns a lazy sequence over the data rows of a CSV file with a header row.
// Each range over the sequence reopens the file and starts from the first row.
// The sequence ends after the last row, or after yielding a single error:
// *IOError when the source cannot be read, *MalformedRowError when a required
// column is absent from the header or from a row.
func Rows(ctx context.Context, open Opener, path string, required []string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		src, err := open(ctx, path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer src.Close()

		r := csv.NewReader(bufio.NewReader(src))
		r.FieldsPerRecord = -1

		header, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				yield(nil, &MalformedRowError{Path: path, Line: 1, Reason: "header row required"})
				return
			}
			yield(nil, readError(path, err))
			return
		}

		names := make([]string, len(header))
		index := make(map[string]int, len(header))
		for i, h := range header {
			if i == 0 {
				h = strings.TrimPrefix(h, "\ufeff")
			}
			names[i] = strings.ToLower(strings.TrimSpace(h))
			index[names[i]] = i
		}
		for _, col := range required {
			if _, ok := index[col]; !ok {
				yield(nil, &MalformedRowError{Path: path, Line: 1, Column: col, Reason: "missing from header"})
				return
			}
		}

		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			fields, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, readError(path, err))
				return
			}
			line, _ := r.FieldPos(0)

			for _, col := range required {
				if index[col] >= len(fields) {
					yield(nil, &MalformedRowError{Path: path, Line: line, Column: col, Reason: "missing from row"})
					return
				}
			}

			rec := make(Record, len(fields))
			for i, v := range fields {
				if i < len(names) {
					rec[names[i]] = strings.TrimSpace(v)
				}
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func readError(path string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &MalformedRowError{Path: path, Line: parseErr.Line, Reason: parseErr.Err.Error(), Err: err}
	}
	return &IOError{Path: path, Err: err}
}
