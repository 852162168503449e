package csvstream

import (
	"iter"

	"github.com/valyala/bytebufferpool"

	"github.com/go-data-exporter/csvstream/source"
)

// Iter pulls records from a source.Rows and yields one encoded chunk per
// accepted record. The first chunk carries the header row and the first
// record together, so consumers that skip empty chunks never lose the
// header. A source that yields no records produces no chunks and no
// header.
//
// Usage follows the Rows idiom:
//
//	it := csvstream.NewIter(rows)
//	defer it.Close()
//	for it.Next() {
//		w.Write(it.Chunk())
//	}
//	if err := it.Err(); err != nil {
//		return err
//	}
type Iter struct {
	rows source.Rows
	enc  *Encoder
	buf  *bytebufferpool.ByteBuffer

	chunk         []byte
	err           error
	done          bool
	headerWritten bool
	accepted      int
}

// NewIter creates an Iter over rows. Call Close when done to return the
// internal buffer to its pool.
func NewIter(rows source.Rows, opts ...Option) *Iter {
	return &Iter{
		rows: rows,
		enc:  NewEncoder(opts...),
		buf:  bytebufferpool.Get(),
	}
}

// Next encodes the next record and reports whether a chunk is available
// via Chunk. It returns false when the source is exhausted or a failure
// occurred; check Err afterwards. Both end states are sticky.
func (it *Iter) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	for {
		if it.enc.cfg.limit >= 0 && it.accepted >= it.enc.cfg.limit {
			it.done = true
			return false
		}
		if !it.rows.Next() {
			it.done = true
			it.err = it.rows.Err()
			return false
		}
		values, err := it.rows.ScanRow()
		if err != nil {
			return it.fail(err)
		}

		mark := len(it.buf.B)
		if !it.headerWritten {
			names, err := it.rows.Columns()
			if err != nil {
				return it.fail(err)
			}
			if it.enc.cfg.writeHeader {
				it.buf.B, err = it.enc.AppendHeader(it.buf.B, names)
				if err != nil {
					it.buf.B = it.buf.B[:mark]
					return it.fail(err)
				}
			} else {
				it.enc.names = names
			}
		}

		var accepted bool
		it.buf.B, accepted, err = it.enc.appendRecord(it.buf.B, values)
		if err != nil {
			it.buf.B = it.buf.B[:mark]
			return it.fail(err)
		}
		if !accepted {
			// Dropped row. Discard any header bytes too; they are
			// re-emitted with the first accepted record.
			it.buf.B = it.buf.B[:mark]
			continue
		}
		it.headerWritten = true
		it.accepted++
		it.chunk = append([]byte(nil), it.buf.B...)
		it.buf.Reset()
		return true
	}
}

// Chunk returns the bytes produced by the last successful Next. The
// slice is owned by the caller and never reused by the Iter.
func (it *Iter) Chunk() []byte {
	return it.chunk
}

// Err returns the terminal error, if any. Source errors are returned
// verbatim; encoding errors wrap ErrUnrepresentable or
// ErrUnequalLengths.
func (it *Iter) Err() error {
	return it.err
}

// Close releases the internal buffer. The Iter must not be used after
// Close.
func (it *Iter) Close() {
	if it.buf != nil {
		bytebufferpool.Put(it.buf)
		it.buf = nil
	}
	it.done = true
}

// Seq exposes the chunk sequence as a range-over-func iterator. A
// terminal error is yielded as the final element with nil bytes.
func (it *Iter) Seq() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for it.Next() {
			if !yield(it.chunk, nil) {
				return
			}
		}
		if it.err != nil {
			yield(nil, it.err)
		}
	}
}

func (it *Iter) fail(err error) bool {
	it.err = err
	it.done = true
	return false
}
