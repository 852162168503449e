// Package tostring converts arbitrary Go values into the text form used
// for CSV fields, reporting NULL-equivalent values separately so the
// encoder can substitute its configured NULL replacement.
package tostring

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var jsonStd = jsoniter.ConfigCompatibleWithStandardLibrary

// String is the text form of one field value. IsNULL marks values that
// have no textual representation (nil, zero time, empty JSON containers);
// the encoder decides what stands in for them.
type String struct {
	String string
	IsNULL bool
}

// ToString formats v as CSV field text.
//
// Primitives go through strconv: integers as canonical base-10 digits,
// floats as the shortest decimal representation that round-trips
// (strconv prec -1). time.Time formats as RFC3339Nano. Values outside
// the primitive set fall back, in order, to json.Marshaler, fmt.Stringer,
// jsoniter marshaling, and finally fmt.Sprintf.
func ToString(v any) String {
	if v == nil {
		return String{"", true}
	}
	switch v := v.(type) {
	case string:
		return String{v, false}
	case []byte:
		return String{string(v), false}
	case bool:
		return String{strconv.FormatBool(v), false}
	case int:
		return String{strconv.Itoa(v), false}
	case int8:
		return String{strconv.FormatInt(int64(v), 10), false}
	case int16:
		return String{strconv.FormatInt(int64(v), 10), false}
	case int32:
		return String{strconv.FormatInt(int64(v), 10), false}
	case int64:
		return String{strconv.FormatInt(v, 10), false}
	case uint:
		return String{strconv.FormatUint(uint64(v), 10), false}
	case uint8:
		return String{strconv.FormatUint(uint64(v), 10), false}
	case uint16:
		return String{strconv.FormatUint(uint64(v), 10), false}
	case uint32:
		return String{strconv.FormatUint(uint64(v), 10), false}
	case uint64:
		return String{strconv.FormatUint(v, 10), false}
	case float32:
		return String{strconv.FormatFloat(float64(v), 'f', -1, 32), false}
	case float64:
		return String{strconv.FormatFloat(v, 'f', -1, 64), false}
	case time.Time:
		if v.IsZero() {
			return String{"", true}
		}
		return String{v.Format(time.RFC3339Nano), false}
	}
	if m, ok := v.(json.Marshaler); ok {
		if data, err := m.MarshalJSON(); err == nil {
			return fromJSON(data)
		}
	}
	if s, ok := v.(fmt.Stringer); ok {
		return String{s.String(), false}
	}
	if data, err := jsonStd.Marshal(v); err == nil {
		return fromJSON(data)
	}
	return String{fmt.Sprintf("%v", v), false}
}

// fromJSON strips the outer quotes of a JSON scalar and maps empty
// containers and null to NULL.
func fromJSON(data []byte) String {
	s := strings.Trim(string(data), `"`)
	if s == "[]" || s == "{}" || s == "null" {
		return String{"", true}
	}
	return String{s, false}
}
