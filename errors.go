package csvstream

import "errors"

var (
	// ErrUnrepresentable reports a field value that cannot be expressed
	// as text under the active configuration, such as invalid UTF-8 when
	// binary fields are disallowed.
	ErrUnrepresentable = errors.New("csvstream: field cannot be represented as text")

	// ErrUnequalLengths reports a record whose field count differs from
	// the first record written. Disabled by WithFlexible.
	ErrUnequalLengths = errors.New("csvstream: record length differs from first record")

	// ErrInvalidHeader reports a custom header whose length does not
	// match the source's column count.
	ErrInvalidHeader = errors.New("csvstream: custom header length does not match columns")
)
