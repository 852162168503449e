package source

import (
	"errors"
	"fmt"

	"github.com/go-data-exporter/csvstream/record"
)

// sliceRows implements Rows over an in-memory slice of rows. Useful for
// tests and small data sets.
type sliceRows struct {
	names   []string
	rows    [][]any
	current []any
	cursor  int
}

// FromData creates a Rows over a 2D slice. Each inner slice is one row.
// Column names are synthesized as column_0, column_1, ... from the first
// row's width.
func FromData(rows [][]any) Rows {
	s := &sliceRows{rows: rows}
	if len(rows) != 0 {
		s.names = make([]string, len(rows[0]))
		for i := range rows[0] {
			s.names[i] = fmt.Sprintf("column_%d", i)
		}
	}
	return s
}

// FromRecords creates a Rows over a slice of records. Column names come
// from the first record; every record must have the same field order.
func FromRecords(recs []record.Record) Rows {
	s := &sliceRows{rows: make([][]any, len(recs))}
	for i, r := range recs {
		s.rows[i] = r.Values()
	}
	if len(recs) != 0 {
		s.names = recs[0].Names()
	}
	return s
}

func (s *sliceRows) Next() bool {
	if s.cursor >= len(s.rows) {
		s.current = nil
		return false
	}
	s.current = s.rows[s.cursor]
	s.cursor++
	return true
}

func (s *sliceRows) ScanRow() ([]any, error) {
	if s.current == nil {
		return nil, errors.New("csvstream: ScanRow called without a successful Next")
	}
	return s.current, nil
}

func (s *sliceRows) Columns() ([]string, error) {
	return s.names, nil
}

func (s *sliceRows) Err() error {
	return nil
}
