package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrUnexpectedType is returned when a result cannot be converted to the requested type
var ErrUnexpectedType = errors.New("unexpected result type")

// Server side date formats
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

// Record is an unordered field name -> value mapping as returned by read.
// No schema is enforced client side.
type Record map[string]interface{}

// --------------------------------------------------------------------------
// Conversion helpers for untyped RPC results
// --------------------------------------------------------------------------

// ToInt64 converts a numeric result to int64.
// Transports decode integers as int64, but integral floats and json.Number are accepted as well.
func ToInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrUnexpectedType, n)
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrUnexpectedType, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: expected integer, got %T", ErrUnexpectedType, v)
	}
}

// ToBool converts a result to bool. Strings are parsed case-insensitively,
// anything else that is not exactly "true" is false.
func ToBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	default:
		return false
	}
}

// ToString converts a result to its string representation
func ToString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case time.Time:
		return s.Format(DateTimeLayout)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(v)
	}
}

// ToIDs converts a list result into a slice of ids
func ToIDs(v interface{}) ([]int64, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected list of ids, got %T", ErrUnexpectedType, v)
	}
	ids := make([]int64, len(list))
	for i, item := range list {
		id, err := ToInt64(item)
		if err != nil {
			return nil, fmt.Errorf("id at index %d: %w", i, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// ToRecord converts a struct result into a Record
func ToRecord(v interface{}) (Record, error) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, nil
	case Record:
		return m, nil
	default:
		return nil, fmt.Errorf("%w: expected struct, got %T", ErrUnexpectedType, v)
	}
}

// ToRecords converts a list of structs into a slice of Records
func ToRecords(v interface{}) ([]Record, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected list of records, got %T", ErrUnexpectedType, v)
	}
	records := make([]Record, len(list))
	for i, item := range list {
		r, err := ToRecord(item)
		if err != nil {
			return nil, fmt.Errorf("record at index %d: %w", i, err)
		}
		records[i] = r
	}
	return records, nil
}

// DatesToStrings replaces every time.Time value of the record by its server datetime string.
// The record is modified in place and returned for convenience.
func DatesToStrings(r Record) Record {
	for k, v := range r {
		if t, ok := v.(time.Time); ok {
			r[k] = t.Format(DateTimeLayout)
		}
	}
	return r
}

// IDsToArgs converts ids to a list that every transport can encode
func IDsToArgs(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// StringsToArgs converts a string slice to a list that every transport can encode
func StringsToArgs(s []string) []interface{} {
	args := make([]interface{}, len(s))
	for i, v := range s {
		args[i] = v
	}
	return args
}

// Normalize converts decoded JSON values into the types the XML-RPC transport produces:
// json.Number becomes int64 (or float64 if not integral), nested lists and maps are converted recursively.
func Normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []interface{}:
		for i := range t {
			t[i] = Normalize(t[i])
		}
		return t
	case map[string]interface{}:
		for k := range t {
			t[k] = Normalize(t[k])
		}
		return t
	default:
		return v
	}
}
