package xmlrpc

import (
	"bytes"
	"context"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/ValentinKolb/oconn/rpc/transport"
	"github.com/kolo/xmlrpc"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"io"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var Logger = logger.GetLogger("transport/rpc")

// faultPattern matches the message of a fault decoded by the xmlrpc library
var faultPattern = regexp.MustCompile(`(?s)^Fault\((-?\d+)\): (.*)$`)

// NewXMLRPCClientTransport creates a transport for the /xmlrpc/<service> endpoints
func NewXMLRPCClientTransport() transport.IRPCClientTransport {
	return &xmlrpcClientTransport{}
}

type xmlrpcClientTransport struct {
	mu         sync.RWMutex
	baseURL    string
	client     *http.Client
	endpoints  *xsync.MapOf[string, string] // service -> endpoint url
	retryCount int
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *xmlrpcClientTransport) Connect(config common.ClientConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	// Drop the connections of a previous Connect
	_ = t.Close()

	timeout := time.Duration(config.Timeout()) * time.Second
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       timeout,
			ResponseHeaderTimeout: timeout,
		},
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.baseURL = config.BaseURL()
	t.client = client
	t.endpoints = xsync.NewMapOf[string, string]()
	t.retryCount = config.Attempts()

	Logger.Debugf("xmlrpc transport ready for %s", t.baseURL)
	return nil
}

func (t *xmlrpcClientTransport) Call(ctx context.Context, service, method string, args ...interface{}) (interface{}, error) {
	t.mu.RLock()
	client, retryCount := t.client, t.retryCount
	endpoint, connected := t.endpoint(service)
	t.mu.RUnlock()
	if !connected {
		return nil, transport.ErrNotConnected
	}

	body, err := xmlrpc.EncodeMethodCall(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s.%s: %w", service, method, err)
	}

	for i := 0; i < retryCount; i++ {
		var result interface{}
		result, err = call(ctx, client, endpoint, service, method, body)
		if err == nil {
			return result, nil
		}

		// Never retry server faults or a cancelled context
		if transport.IsRemoteError(err) || ctx.Err() != nil {
			return nil, err
		}
		Logger.Debugf("%s.%s attempt %d/%d failed: %v", service, method, i+1, retryCount, err)
	}
	return nil, err
}

func (t *xmlrpcClientTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client != nil {
		t.client.CloseIdleConnections()
	}

	t.client = nil
	t.endpoints = nil
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// endpoint returns the url of a service. The caller must hold the read lock.
func (t *xmlrpcClientTransport) endpoint(service string) (string, bool) {
	if t.endpoints == nil {
		return "", false
	}
	u, _ := t.endpoints.LoadOrCompute(service, func() string {
		return fmt.Sprintf("%s/xmlrpc/%s", t.baseURL, service)
	})
	return u, true
}

// call sends a single request bound to ctx and decodes the response.
// Only a <fault> answer becomes a RemoteError, everything else is a transport error.
func call(ctx context.Context, client *http.Client, endpoint, service, method string, body []byte) (interface{}, error) {
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Content-Type", "text/xml")

	httpResponse, err := client.Do(httpRequest)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		return nil, fmt.Errorf("http error: %s", httpResponse.Status)
	}

	data, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	resp := xmlrpc.Response(data)
	if err := resp.Err(); err != nil {
		if faultPattern.MatchString(err.Error()) {
			return nil, toRemoteError(service, method, err.Error())
		}
		return nil, fmt.Errorf("failed to decode fault: %w", err)
	}

	var result interface{}
	if err := resp.Unmarshal(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}

// toRemoteError converts a fault message of the xmlrpc library ("Fault(code): message") to a RemoteError
func toRemoteError(service, method, msg string) *transport.RemoteError {
	remoteErr := &transport.RemoteError{
		Service: service,
		Method:  method,
		Message: strings.TrimSpace(msg),
	}
	if m := faultPattern.FindStringSubmatch(msg); m != nil {
		remoteErr.Code, _ = strconv.Atoi(m[1])
		remoteErr.Message = strings.TrimSpace(m[2])
	}
	return remoteErr
}
