package client

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/ValentinKolb/oconn/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"time"
)

var (
	Logger = logger.GetLogger("client")
)

var (
	// ErrLoginFailed is returned by Connect when the server rejects the credentials
	ErrLoginFailed = errors.New("login failed: bad database, user name or password")
	// ErrNotFound is returned by ReadOne when the record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrUnexpectedResponse is returned when the server answers with a value of the wrong shape
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// invokeRPCCall is the helper used for every call to the server.
// It sends the call through the transport, records metrics and logs failures.
// metricMethod is the name under which the call is counted (for object calls the object method).
func invokeRPCCall(
	ctx context.Context,
	t transport.IRPCClientTransport,
	metricMethod string,
	service, method string,
	args ...interface{},
) (interface{}, error) {
	start := time.Now()
	result, err := t.Call(ctx, service, method, args...)
	common.ObserveCall(service, metricMethod, start, err)

	if err != nil {
		Logger.Debugf("%s.%s failed after %s: %v", service, metricMethod, time.Since(start), err)
		return nil, err
	}

	Logger.Debugf("%s.%s took %s", service, metricMethod, time.Since(start))
	return result, nil
}

// unexpected wraps a conversion error of a result
func unexpected(model, method string, err error) error {
	return fmt.Errorf("%w from %s.%s: %v", ErrUnexpectedResponse, model, method, err)
}

// ReverseIDs reverses the order of the ids in place
func ReverseIDs(ids []int64) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
