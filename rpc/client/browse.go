package client

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/go-viper/mapstructure/v2"
	"reflect"
	"strconv"
	"time"
)

// ExtraKeyPrefix is the prefix of the keys under which Browse injects extras into each record
const ExtraKeyPrefix = "extra_"

// RecordUnmarshaler is implemented by types that build themselves from a record.
// Browse prefers it over the struct tag based decoding.
type RecordUnmarshaler interface {
	UnmarshalRecord(record common.Record) error
}

// Many2One is the value of a relational field pointing to a single record.
// The server sends it as an [id, display name] pair.
type Many2One struct {
	ID   int64
	Name string
}

// BrowseError is returned by Browse when reading or hydrating the records fails
type BrowseError struct {
	Model string
	Err   error
}

func (e *BrowseError) Error() string {
	return fmt.Sprintf("browse %s: %v", e.Model, e.Err)
}

func (e *BrowseError) Unwrap() error {
	return e.Err
}

// Browse reads the records with the given ids and builds one E per record.
//
// If *E implements RecordUnmarshaler, UnmarshalRecord is called with the record.
// Otherwise the record is decoded into E using the `odoo` struct tags, e.g.:
//
//	type Partner struct {
//		ID      int64           `odoo:"id"`
//		Name    string          `odoo:"name"`
//		Parent  client.Many2One `odoo:"parent_id"`
//		Updated time.Time       `odoo:"write_date"`
//		Source  string          `odoo:"extra_0"`
//	}
//
// The server sends false for empty fields, which decodes to the zero value of the field.
// Extras are added to every record under the keys extra_0, extra_1, ...
func Browse[E any](ctx context.Context, s *Session, model string, ids []int64, fields []string, extras ...interface{}) ([]E, error) {
	records, err := s.Read(ctx, model, ids, fields)
	if err != nil {
		return nil, &BrowseError{Model: model, Err: err}
	}

	result := make([]E, 0, len(records))
	for i, record := range records {
		record = withExtras(record, extras)

		var e E
		if err := hydrate(record, &e); err != nil {
			return nil, &BrowseError{Model: model, Err: fmt.Errorf("record at index %d: %w", i, err)}
		}
		result = append(result, e)
	}
	return result, nil
}

// withExtras returns a copy of the record with the extras added
func withExtras(record common.Record, extras []interface{}) common.Record {
	if len(extras) == 0 {
		return record
	}
	r := make(common.Record, len(record)+len(extras))
	for k, v := range record {
		r[k] = v
	}
	for i, extra := range extras {
		r[ExtraKeyPrefix+strconv.Itoa(i)] = extra
	}
	return r
}

// hydrate fills target (a pointer) with the values of the record
func hydrate(record common.Record, target interface{}) error {
	if u, ok := target.(RecordUnmarshaler); ok {
		return u.UnmarshalRecord(record)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "odoo",
		Result:     target,
		DecodeHook: mapstructure.DecodeHookFuncType(recordDecodeHook),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(record))
}

var (
	many2OneType = reflect.TypeOf(Many2One{})
	timeType     = reflect.TypeOf(time.Time{})
)

// recordDecodeHook converts the server conventions to Go values:
// false for empty fields, [id, name] pairs for many2one fields and date strings.
func recordDecodeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	// Empty field
	if b, ok := data.(bool); ok && !b && to.Kind() != reflect.Bool && to.Kind() != reflect.Interface {
		return reflect.Zero(to).Interface(), nil
	}

	switch to {
	case many2OneType:
		return toMany2One(data)
	case timeType:
		if s, ok := data.(string); ok {
			return parseServerTime(s)
		}
	}
	return data, nil
}

// toMany2One converts an [id, name] pair (or a bare id) into a Many2One
func toMany2One(data interface{}) (interface{}, error) {
	switch v := data.(type) {
	case Many2One:
		return v, nil
	case []interface{}:
		if len(v) != 2 {
			return nil, fmt.Errorf("many2one value must have 2 elements, got %d", len(v))
		}
		id, err := common.ToInt64(v[0])
		if err != nil {
			return nil, err
		}
		return Many2One{ID: id, Name: common.ToString(v[1])}, nil
	default:
		id, err := common.ToInt64(v)
		if err != nil {
			return nil, err
		}
		return Many2One{ID: id}, nil
	}
}

// parseServerTime parses the datetime and date formats of the server (UTC)
func parseServerTime(s string) (time.Time, error) {
	if t, err := time.Parse(common.DateTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(common.DateLayout, s)
}
