package source

import (
	"iter"

	"github.com/go-data-exporter/csvstream/record"
)

// seqRows adapts a push-style iter.Seq2 into the pull-style Rows contract
// using iter.Pull2. Stop is called when the sequence ends or errors, so
// abandoning the Rows mid-sequence releases the underlying iterator.
type seqRows struct {
	names   []string
	next    func() (record.Record, error, bool)
	stop    func()
	current []any
	err     error
	done    bool
}

// FromSeq creates a Rows over a lazy sequence of records. The first
// record's names determine the columns when names is nil. A non-nil error
// yielded by the sequence terminates the Rows with that error.
func FromSeq(names []string, seq iter.Seq2[record.Record, error]) Rows {
	next, stop := iter.Pull2(seq)
	return &seqRows{names: names, next: next, stop: stop}
}

func (s *seqRows) Next() bool {
	if s.done {
		return false
	}
	rec, err, ok := s.next()
	if !ok {
		s.finish(nil)
		return false
	}
	if err != nil {
		s.finish(err)
		return false
	}
	if s.names == nil {
		s.names = rec.Names()
	}
	s.current = rec.Values()
	return true
}

func (s *seqRows) ScanRow() ([]any, error) {
	return s.current, nil
}

func (s *seqRows) Columns() ([]string, error) {
	return s.names, nil
}

func (s *seqRows) Err() error {
	return s.err
}

func (s *seqRows) finish(err error) {
	s.err = err
	s.done = true
	s.current = nil
	s.stop()
}
