// Package source provides lazy record inputs for CSV encoding. A Rows
// implementation yields one row per Next/ScanRow cycle, so sources backed
// by database cursors or generators never materialize their full result
// set.
package source

// Rows is a lazy, finite-or-unbounded sequence of rows, polled one at a
// time. Columns reports the ordered field names used for the header row;
// the order must match the value order returned by ScanRow. Err reports
// a source failure after Next returns false, distinct from any encoding
// failure downstream.
type Rows interface {
	Next() bool
	ScanRow() ([]any, error)
	Columns() ([]string, error)
	Err() error
}
