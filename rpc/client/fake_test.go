package client

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/ValentinKolb/oconn/rpc/transport"
	"sync"
)

// fakeCall is a call recorded by the fake transport
type fakeCall struct {
	Service string
	Method  string
	Args    []interface{}
}

// objectHandler answers an object.execute call, it gets the method specific args
type objectHandler func(args []interface{}) (interface{}, error)

// fakeTransport is an in-memory transport. It answers login with uid 7 (unless
// loginResult is set) and object calls with the handler registered for model.method.
type fakeTransport struct {
	mu          sync.Mutex
	connected   bool
	closed      int
	calls       []fakeCall
	loginResult interface{}
	objects     map[string]objectHandler
	common      map[string]func() (interface{}, error)
	databases   interface{}
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		loginResult: int64(7),
		objects:     map[string]objectHandler{},
		common:      map[string]func() (interface{}, error){},
	}
}

// on registers the handler for model.method
func (f *fakeTransport) on(model, method string, h objectHandler) *fakeTransport {
	f.objects[model+"."+method] = h
	return f
}

// lastCall returns the last recorded call
func (f *fakeTransport) lastCall() fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return fakeCall{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeTransport) Connect(config common.ClientConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = true
	return nil
}

func (f *fakeTransport) Call(ctx context.Context, service, method string, args ...interface{}) (interface{}, error) {
	f.mu.Lock()
	if !f.connected {
		f.mu.Unlock()
		return nil, transport.ErrNotConnected
	}
	f.calls = append(f.calls, fakeCall{Service: service, Method: method, Args: args})
	f.mu.Unlock()

	switch service {
	case common.ServiceCommon:
		if method == common.MethodLogin {
			return f.loginResult, nil
		}
		if h, ok := f.common[method]; ok {
			return h()
		}
	case common.ServiceDB:
		if method == common.MethodList {
			return f.databases, nil
		}
	case common.ServiceObject:
		if method != common.MethodExecute || len(args) < 5 {
			return nil, fmt.Errorf("bad object call %s %v", method, args)
		}
		key := fmt.Sprintf("%v.%v", args[3], args[4])
		if h, ok := f.objects[key]; ok {
			return h(args[5:])
		}
	}
	return nil, &transport.RemoteError{Service: service, Method: method, Message: "not implemented"}
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
	f.closed++
	return nil
}
