package csvstream_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-data-exporter/csvstream"
	"github.com/go-data-exporter/csvstream/tostring"
)

func TestAppendRecordQuoting(t *testing.T) {
	tests := []struct {
		name   string
		opts   []csvstream.Option
		values []any
		want   string
	}{
		{
			name:   "plain",
			values: []any{"a", "b", "c"},
			want:   "a,b,c\n",
		},
		{
			name:   "embeddedComma",
			values: []any{"Anytown, USA"},
			want:   "\"Anytown, USA\"\n",
		},
		{
			name:   "embeddedQuote",
			values: []any{`He said "hi"`},
			want:   "\"He said \"\"hi\"\"\"\n",
		},
		{
			name:   "embeddedNewline",
			values: []any{"multi\nline", "z"},
			want:   "\"multi\nline\",z\n",
		},
		{
			name:   "embeddedCR",
			values: []any{"a\rb"},
			want:   "\"a\rb\"\n",
		},
		{
			name:   "singleEmptyField",
			values: []any{""},
			want:   "\"\"\n",
		},
		{
			name:   "emptyFieldAmongOthers",
			values: []any{"", "b"},
			want:   ",b\n",
		},
		{
			name:   "numbers",
			values: []any{int64(-42), uint64(4628910), 42.5, float32(1.25)},
			want:   "-42,4628910,42.5,1.25\n",
		},
		{
			name:   "bool",
			values: []any{true, 1.3, "hi"},
			want:   "true,1.3,hi\n",
		},
		{
			name:   "nilBecomesEmpty",
			values: []any{nil, "x"},
			want:   ",x\n",
		},
		{
			name:   "customNull",
			opts:   []csvstream.Option{csvstream.WithCustomNULL("NULL")},
			values: []any{nil, "x"},
			want:   "NULL,x\n",
		},
		{
			name:   "alwaysQuote",
			opts:   []csvstream.Option{csvstream.WithQuoteStyle(csvstream.QuoteAlways)},
			values: []any{"a", int64(1)},
			want:   "\"a\",\"1\"\n",
		},
		{
			name:   "neverQuote",
			opts:   []csvstream.Option{csvstream.WithQuoteStyle(csvstream.QuoteNever)},
			values: []any{"a,b", "c"},
			want:   "a,b,c\n",
		},
		{
			name:   "nonNumericQuotesText",
			opts:   []csvstream.Option{csvstream.WithQuoteStyle(csvstream.QuoteNonNumeric)},
			values: []any{"label", int64(3), 3.14},
			want:   "\"label\",3,3.14\n",
		},
		{
			name:   "customDelimiter",
			opts:   []csvstream.Option{csvstream.WithDelimiter(';')},
			values: []any{"a;b", "c"},
			want:   "\"a;b\";c\n",
		},
		{
			name:   "customQuote",
			opts:   []csvstream.Option{csvstream.WithQuote('\'')},
			values: []any{"alpha'beta", "plain"},
			want:   "'alpha''beta',plain\n",
		},
		{
			name:   "crlf",
			opts:   []csvstream.Option{csvstream.WithCRLF(true)},
			values: []any{"a", "b"},
			want:   "a,b\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := csvstream.NewEncoder(tt.opts...)
			buf, err := enc.AppendRecord(nil, tt.values)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(buf))
		})
	}
}

func TestAppendHeader(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		enc := csvstream.NewEncoder()
		buf, err := enc.AppendHeader(nil, []string{"city", "country", "popcount"})
		require.NoError(t, err)
		require.Equal(t, "city,country,popcount\n", string(buf))
	})

	t.Run("quotedName", func(t *testing.T) {
		enc := csvstream.NewEncoder()
		buf, err := enc.AppendHeader(nil, []string{"name, full", "age"})
		require.NoError(t, err)
		require.Equal(t, "\"name, full\",age\n", string(buf))
	})

	t.Run("emptyNamesNoOp", func(t *testing.T) {
		enc := csvstream.NewEncoder()
		buf, err := enc.AppendHeader([]byte("x"), nil)
		require.NoError(t, err)
		require.Equal(t, "x", string(buf))
	})

	t.Run("customHeader", func(t *testing.T) {
		enc := csvstream.NewEncoder(csvstream.WithCustomHeader([]string{"City", "Country"}))
		buf, err := enc.AppendHeader(nil, []string{"city", "country"})
		require.NoError(t, err)
		require.Equal(t, "City,Country\n", string(buf))
	})

	t.Run("customHeaderLengthMismatch", func(t *testing.T) {
		enc := csvstream.NewEncoder(csvstream.WithCustomHeader([]string{"only one"}))
		_, err := enc.AppendHeader(nil, []string{"a", "b"})
		require.ErrorIs(t, err, csvstream.ErrInvalidHeader)
	})
}

func TestUnequalLengths(t *testing.T) {
	enc := csvstream.NewEncoder()
	buf, err := enc.AppendRecord(nil, []any{"a", "b"})
	require.NoError(t, err)

	_, err = enc.AppendRecord(buf, []any{"x"})
	require.ErrorIs(t, err, csvstream.ErrUnequalLengths)
}

func TestUnequalLengthsAgainstHeader(t *testing.T) {
	enc := csvstream.NewEncoder()
	buf, err := enc.AppendHeader(nil, []string{"a", "b", "c"})
	require.NoError(t, err)

	_, err = enc.AppendRecord(buf, []any{"x"})
	require.ErrorIs(t, err, csvstream.ErrUnequalLengths)
}

func TestFlexibleLengths(t *testing.T) {
	enc := csvstream.NewEncoder(csvstream.WithFlexible(true))
	buf, err := enc.AppendRecord(nil, []any{"a", "b"})
	require.NoError(t, err)
	buf, err = enc.AppendRecord(buf, []any{"x"})
	require.NoError(t, err)
	require.Equal(t, "a,b\nx\n", string(buf))
}

func TestInvalidUTF8(t *testing.T) {
	raw := []byte{0xff, 0xfe}

	t.Run("rejectedByDefault", func(t *testing.T) {
		enc := csvstream.NewEncoder()
		buf, err := enc.AppendRecord([]byte("keep,"), []any{raw})
		require.ErrorIs(t, err, csvstream.ErrUnrepresentable)
		require.Equal(t, "keep,", string(buf), "failing record must not leave partial bytes")
	})

	t.Run("allowedWithBinaryFields", func(t *testing.T) {
		enc := csvstream.NewEncoder(csvstream.WithBinaryFields(true))
		buf, err := enc.AppendRecord(nil, []any{raw})
		require.NoError(t, err)
		require.Equal(t, append([]byte{0xff, 0xfe}, '\n'), buf)
	})
}

func TestCustomTypeMapper(t *testing.T) {
	type temperature float64
	enc := csvstream.NewEncoder(
		csvstream.WithCustomType(func(v temperature, _ csvstream.Metadata) tostring.String {
			return tostring.ToString(float64(v)*9/5 + 32)
		}),
	)
	buf, err := enc.AppendRecord(nil, []any{temperature(100), "boiling"})
	require.NoError(t, err)
	require.Equal(t, "212,boiling\n", string(buf))
}
