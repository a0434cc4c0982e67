package transport

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
)

// ErrNotConnected is returned by Call when Connect was not called (or the transport is closed)
var ErrNotConnected = errors.New("transport not connected")

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Call invokes method on the given service of the server and returns the decoded result.
	// The result is one of: nil, bool, int64, float64, string, time.Time,
	// []interface{} or map[string]interface{}.
	// Errors reported by the server are returned as *RemoteError.
	Call(ctx context.Context, service, method string, args ...interface{}) (interface{}, error)
	// Close closes the transport connection
	Close() error
}

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

// RemoteError is an error reported by the server (XML-RPC fault or JSON-RPC error object).
// It is never retried by a transport.
type RemoteError struct {
	Service string
	Method  string
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s.%s: remote error %d: %s", e.Service, e.Method, e.Code, e.Message)
}

// IsRemoteError reports whether err is (or wraps) a *RemoteError
func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
