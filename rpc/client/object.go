package client

import (
	"context"
	"github.com/ValentinKolb/oconn/rpc/common"
)

// --------------------------------------------------------------------------
// Search options
// --------------------------------------------------------------------------

type searchOptions struct {
	offset  int
	limit   int
	order   string
	reverse bool
}

// SearchOption configures a Search call
type SearchOption func(*searchOptions)

// WithOffset skips the first n matching records
func WithOffset(n int) SearchOption {
	return func(o *searchOptions) { o.offset = n }
}

// WithLimit returns at most n ids (0 means no limit)
func WithLimit(n int) SearchOption {
	return func(o *searchOptions) { o.limit = n }
}

// WithOrder sets the server side sort specification (e.g. "name desc, id")
func WithOrder(order string) SearchOption {
	return func(o *searchOptions) { o.order = order }
}

// WithReverse reverses the order of the returned ids on the client
func WithReverse() SearchOption {
	return func(o *searchOptions) { o.reverse = true }
}

// --------------------------------------------------------------------------
// CRUD operations
// --------------------------------------------------------------------------

// Create creates a new record of model with the given values and returns its id.
// The context is optional and only sent when not nil.
func (s *Session) Create(ctx context.Context, model string, values common.Values, reqContext common.Context) (int64, error) {
	params := []interface{}{map[string]interface{}(values)}
	if reqContext != nil {
		params = append(params, map[string]interface{}(reqContext))
	}

	result, err := s.execute(ctx, model, common.MethodCreate, params...)
	if err != nil {
		return 0, err
	}

	id, err := common.ToInt64(result)
	if err != nil {
		return 0, unexpected(model, common.MethodCreate, err)
	}
	return id, nil
}

// Search returns the ids of all records of model matching the domain.
// An empty domain matches all records. The order of the ids is defined by the
// server unless WithReverse is given.
func (s *Session) Search(ctx context.Context, model string, domain common.Domain, opts ...SearchOption) ([]int64, error) {
	o := searchOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	// The server expects false for "no order"
	var order interface{} = false
	if o.order != "" {
		order = o.order
	}

	result, err := s.execute(ctx, model, common.MethodSearch, domain.Args(), o.offset, o.limit, order)
	if err != nil {
		return nil, err
	}

	ids, err := common.ToIDs(result)
	if err != nil {
		return nil, unexpected(model, common.MethodSearch, err)
	}

	if o.reverse {
		ReverseIDs(ids)
	}
	return ids, nil
}

// SearchCount returns the number of records of model matching the domain
func (s *Session) SearchCount(ctx context.Context, model string, domain common.Domain) (int64, error) {
	result, err := s.execute(ctx, model, common.MethodSearchCount, domain.Args())
	if err != nil {
		return 0, err
	}

	n, err := common.ToInt64(result)
	if err != nil {
		return 0, unexpected(model, common.MethodSearchCount, err)
	}
	return n, nil
}

// Read returns the values of the given fields for each id (in the order returned by the server).
// An empty fields list returns all fields.
func (s *Session) Read(ctx context.Context, model string, ids []int64, fields []string) ([]common.Record, error) {
	result, err := s.execute(ctx, model, common.MethodRead, common.IDsToArgs(ids), common.StringsToArgs(fields))
	if err != nil {
		return nil, err
	}

	records, err := common.ToRecords(result)
	if err != nil {
		return nil, unexpected(model, common.MethodRead, err)
	}
	return records, nil
}

// ReadOne reads a single record. It returns ErrNotFound if the server returns no record.
func (s *Session) ReadOne(ctx context.Context, model string, id int64, fields []string) (common.Record, error) {
	records, err := s.Read(ctx, model, []int64{id}, fields)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// Write updates the records with the given values. The context is optional.
func (s *Session) Write(ctx context.Context, model string, ids []int64, values common.Values, reqContext common.Context) (bool, error) {
	params := []interface{}{common.IDsToArgs(ids), map[string]interface{}(values)}
	if reqContext != nil {
		params = append(params, map[string]interface{}(reqContext))
	}

	result, err := s.execute(ctx, model, common.MethodWrite, params...)
	if err != nil {
		return false, err
	}
	return common.ToBool(result), nil
}

// Unlink deletes the records with the given ids
func (s *Session) Unlink(ctx context.Context, model string, ids []int64) (bool, error) {
	result, err := s.execute(ctx, model, common.MethodUnlink, common.IDsToArgs(ids))
	if err != nil {
		return false, err
	}
	return common.ToBool(result), nil
}

// Call invokes any method of a model. Each param can be a single value, a list
// or a map, depending on the method called. The raw result is returned.
func (s *Session) Call(ctx context.Context, model, method string, params ...interface{}) (interface{}, error) {
	return s.execute(ctx, model, method, params...)
}
