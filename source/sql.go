package source

import "database/sql"

// sqlRows wraps *sql.Rows so database results can feed the CSV encoder
// without buffering the result set.
type sqlRows struct {
	*sql.Rows

	names   []string
	current []any
	ptrs    []any
}

// FromSQL creates a Rows over a database/sql result set. The caller
// remains responsible for closing rows once encoding finishes.
func FromSQL(rows *sql.Rows) Rows {
	return &sqlRows{Rows: rows}
}

func (s *sqlRows) Columns() ([]string, error) {
	if s.names != nil {
		return s.names, nil
	}
	names, err := s.Rows.Columns()
	if err != nil {
		return nil, err
	}
	s.names = names
	return s.names, nil
}

// ScanRow reads the current row through pointer indirection into a
// reused []any, so per-row allocations stay flat.
func (s *sqlRows) ScanRow() ([]any, error) {
	if s.names == nil {
		if _, err := s.Columns(); err != nil {
			return nil, err
		}
	}
	if s.current == nil {
		s.current = make([]any, len(s.names))
		s.ptrs = make([]any, len(s.names))
	}
	for i := range s.current {
		s.ptrs[i] = &s.current[i]
	}
	if err := s.Rows.Scan(s.ptrs...); err != nil {
		return nil, err
	}
	return s.current, nil
}
