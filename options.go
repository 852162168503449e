package csvstream

import (
	"reflect"

	"github.com/go-data-exporter/csvstream/tostring"
)

// QuoteStyle selects when fields are wrapped in quote characters.
type QuoteStyle int

const (
	// QuoteNecessary quotes a field only when it contains the delimiter,
	// the quote character or a line break. This is the default.
	QuoteNecessary QuoteStyle = iota
	// QuoteAlways quotes every field.
	QuoteAlways
	// QuoteNonNumeric quotes every field whose text does not parse as a
	// number, in addition to fields that need quoting anyway.
	QuoteNonNumeric
	// QuoteNever never quotes, even if the output stops being valid CSV.
	QuoteNever
)

// Metadata describes the position of a value being converted, passed to
// custom type mappers.
type Metadata struct {
	// Row is the 1-based index of the record being encoded.
	Row int
	// Column is the field's column name, or empty if names are unknown.
	Column string
}

type config struct {
	customMapper     map[reflect.Type]func(any, Metadata) tostring.String
	preProcessorFunc func(row []string) ([]string, bool)
	delimiter        byte
	quote            byte
	quoteStyle       QuoteStyle
	useCRLF          bool
	writeHeader      bool
	customHeader     []string
	nullValue        string
	binaryFields     bool
	flexible         bool
	limit            int
}

// Option configures an Encoder at construction time. The resulting
// configuration is never mutated afterwards.
type Option func(*config)

func defaultConfig() config {
	return config{
		customMapper: make(map[reflect.Type]func(any, Metadata) tostring.String),
		delimiter:    ',',
		quote:        '"',
		quoteStyle:   QuoteNecessary,
		writeHeader:  true,
		limit:        -1,
	}
}

// WithDelimiter sets the field delimiter byte. Default is ','.
func WithDelimiter(delimiter byte) Option {
	return func(c *config) {
		c.delimiter = delimiter
	}
}

// WithQuote sets the quote byte. Default is '"'.
func WithQuote(quote byte) Option {
	return func(c *config) {
		c.quote = quote
	}
}

// WithQuoteStyle sets the quoting policy. Default is QuoteNecessary.
func WithQuoteStyle(style QuoteStyle) Option {
	return func(c *config) {
		c.quoteStyle = style
	}
}

// WithCRLF terminates records with \r\n instead of the default \n.
func WithCRLF(useCRLF bool) Option {
	return func(c *config) {
		c.useCRLF = useCRLF
	}
}

// WithHeader controls whether a header row is written before the first
// record. Default is true.
func WithHeader(writeHeader bool) Option {
	return func(c *config) {
		c.writeHeader = writeHeader
	}
}

// WithCustomHeader replaces the source's column names in the header row.
// The length must match the column count.
func WithCustomHeader(customHeader []string) Option {
	return func(c *config) {
		c.customHeader = customHeader
	}
}

// WithCustomNULL sets the text written for NULL values. Default is empty.
func WithCustomNULL(nullValue string) Option {
	return func(c *config) {
		c.nullValue = nullValue
	}
}

// WithBinaryFields allows field text that is not valid UTF-8 to pass
// through verbatim. By default such fields fail with ErrUnrepresentable.
func WithBinaryFields(allow bool) Option {
	return func(c *config) {
		c.binaryFields = allow
	}
}

// WithFlexible allows records with differing field counts. By default a
// record whose length differs from the first one fails with
// ErrUnequalLengths.
func WithFlexible(flexible bool) Option {
	return func(c *config) {
		c.flexible = flexible
	}
}

// WithLimit stops encoding after limit records. Negative means no limit.
func WithLimit(limit int) Option {
	return func(c *config) {
		c.limit = limit
	}
}

// WithCustomType registers a conversion for values of type T, taking
// precedence over the built-in formatting.
func WithCustomType[T any](fn func(v T, m Metadata) tostring.String) Option {
	return func(c *config) {
		var zero T
		typ := reflect.TypeOf(zero)
		if c.customMapper == nil {
			c.customMapper = make(map[reflect.Type]func(any, Metadata) tostring.String)
		}
		c.customMapper[typ] = func(v any, m Metadata) tostring.String {
			return fn(v.(T), m)
		}
	}
}

// WithPreProcessorFunc transforms each formatted row before it is
// encoded. Returning false drops the row entirely.
func WithPreProcessorFunc(fn func(row []string) ([]string, bool)) Option {
	return func(c *config) {
		c.preProcessorFunc = fn
	}
}
