// Package csvstream encodes lazy record sequences into CSV bytes,
// produced incrementally as a pull-based sequence of chunks instead of a
// fully materialized document. Records come from a source.Rows (database
// cursors, Hive cursors, in-memory data, range-over-func sequences) or
// from a channel of record.Record values; chunks go wherever bytes go,
// such as sockets, files, or HTTP response bodies.
//
// Output is RFC 4180 style: comma-delimited, LF-terminated by default,
// fields quoted when they contain the delimiter, a quote or a line
// break, with embedded quotes doubled.
package csvstream

import (
	"io"
	"os"

	"github.com/go-data-exporter/csvstream/source"
)

// Write drains rows through an Iter into w.
func Write(rows source.Rows, w io.Writer, opts ...Option) error {
	it := NewIter(rows, opts...)
	defer it.Close()
	for it.Next() {
		if _, err := w.Write(it.Chunk()); err != nil {
			return err
		}
	}
	return it.Err()
}

// WriteFile drains rows into a newly created file.
func WriteFile(rows source.Rows, filename string, opts ...Option) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Write(rows, f, opts...); err != nil {
		return err
	}
	return f.Close()
}
