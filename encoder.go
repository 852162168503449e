package csvstream

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-data-exporter/csvstream/tostring"
)

// Encoder serializes header and record rows into a caller-supplied byte
// buffer using append semantics. It holds no buffer of its own; the pull
// adapters own the buffer and drain it into chunks. The only mutable
// state is the field count of the first row, used to reject ragged
// records, and the running record index exposed to custom mappers.
type Encoder struct {
	cfg config

	names           []string
	firstFieldCount int
	rows            int
}

// NewEncoder creates an Encoder with the given options applied over the
// defaults: comma delimiter, double-quote, quote-when-needed, LF
// terminator, header enabled.
func NewEncoder(opts ...Option) *Encoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Encoder{cfg: cfg, firstFieldCount: -1}
}

// AppendHeader appends a header row of the given column names to buf and
// returns the extended buffer. Names are quoted under the same rules as
// data fields. An empty names slice appends nothing. A custom header
// configured with WithCustomHeader replaces names and must match their
// length.
func (e *Encoder) AppendHeader(buf []byte, names []string) ([]byte, error) {
	e.names = names
	if e.cfg.customHeader != nil {
		if len(e.cfg.customHeader) != len(names) {
			return buf, fmt.Errorf("%w: %d != %d", ErrInvalidHeader, len(e.cfg.customHeader), len(names))
		}
		names = e.cfg.customHeader
	}
	if len(names) == 0 {
		return buf, nil
	}
	if e.firstFieldCount < 0 {
		e.firstFieldCount = len(names)
	}
	return e.appendRow(buf, names), nil
}

// AppendRecord formats values, appends them as one record row to buf and
// returns the extended buffer. On error buf is returned with its
// original contents. Rows dropped by a preprocessor append nothing.
func (e *Encoder) AppendRecord(buf []byte, values []any) ([]byte, error) {
	buf, _, err := e.appendRecord(buf, values)
	return buf, err
}

// appendRecord is AppendRecord plus an accepted flag, so the adapters
// can tell a dropped row from an encoded one.
func (e *Encoder) appendRecord(buf []byte, values []any) ([]byte, bool, error) {
	mark := len(buf)

	row, err := e.formatRow(values)
	if err != nil {
		return buf[:mark], false, err
	}
	if e.cfg.preProcessorFunc != nil {
		var keep bool
		row, keep = e.cfg.preProcessorFunc(row)
		if !keep {
			return buf[:mark], false, nil
		}
	}
	if !e.cfg.flexible {
		if e.firstFieldCount < 0 {
			e.firstFieldCount = len(row)
		} else if len(row) != e.firstFieldCount {
			return buf[:mark], false, fmt.Errorf("%w: expected %d fields, got %d",
				ErrUnequalLengths, e.firstFieldCount, len(row))
		}
	}
	return e.appendRow(buf, row), true, nil
}

// formatRow converts raw values to field text. Custom mappers run first,
// NULLs become the configured replacement, and invalid UTF-8 is rejected
// unless binary fields are allowed.
func (e *Encoder) formatRow(values []any) ([]string, error) {
	e.rows++
	row := make([]string, len(values))
	for i, v := range values {
		var s tostring.String
		if fn, ok := e.lookupMapper(v); ok {
			s = fn(v, Metadata{Row: e.rows, Column: e.columnName(i)})
		} else {
			s = tostring.ToString(v)
		}
		if s.IsNULL {
			s.String = e.cfg.nullValue
		}
		if !e.cfg.binaryFields && !utf8.ValidString(s.String) {
			return nil, fmt.Errorf("%w: field %d (%s) is not valid UTF-8",
				ErrUnrepresentable, i, e.columnName(i))
		}
		row[i] = s.String
	}
	return row, nil
}

func (e *Encoder) lookupMapper(v any) (func(any, Metadata) tostring.String, bool) {
	if len(e.cfg.customMapper) == 0 || v == nil {
		return nil, false
	}
	fn, ok := e.cfg.customMapper[reflect.TypeOf(v)]
	return fn, ok
}

func (e *Encoder) columnName(i int) string {
	if i < len(e.names) {
		return e.names[i]
	}
	return ""
}

// appendRow writes one row of already-formatted fields plus the record
// terminator. A row consisting of a single empty field is written quoted
// so it stays distinguishable from a blank line.
func (e *Encoder) appendRow(buf []byte, row []string) []byte {
	for i, field := range row {
		if i > 0 {
			buf = append(buf, e.cfg.delimiter)
		}
		force := len(row) == 1 && field == ""
		buf = e.appendField(buf, field, force)
	}
	if e.cfg.useCRLF {
		return append(buf, '\r', '\n')
	}
	return append(buf, '\n')
}

func (e *Encoder) appendField(buf []byte, field string, force bool) []byte {
	if !force && !e.fieldNeedsQuotes(field) {
		return append(buf, field...)
	}
	if e.cfg.quoteStyle == QuoteNever {
		return append(buf, field...)
	}

	quote := e.cfg.quote
	buf = append(buf, quote)
	for {
		i := strings.IndexByte(field, quote)
		if i < 0 {
			break
		}
		// Keep the quote and double it.
		buf = append(buf, field[:i+1]...)
		buf = append(buf, quote)
		field = field[i+1:]
	}
	buf = append(buf, field...)
	return append(buf, quote)
}

func (e *Encoder) fieldNeedsQuotes(field string) bool {
	switch e.cfg.quoteStyle {
	case QuoteNever:
		return false
	case QuoteAlways:
		return true
	case QuoteNonNumeric:
		if !isNumeric(field) {
			return true
		}
	}
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case e.cfg.delimiter, e.cfg.quote, '\r', '\n':
			return true
		}
	}
	return false
}

// isNumeric reports whether field parses as an integer or float, the set
// QuoteNonNumeric leaves unquoted.
func isNumeric(field string) bool {
	if field == "" {
		return false
	}
	if _, err := strconv.ParseInt(field, 10, 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(field, 64)
	return err == nil
}
