package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/ValentinKolb/oconn/rpc/transport"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
	"go.lsp.dev/jsonrpc2"
	"io"
	"net/http"
	"sync"
	"time"
)

var Logger = logger.GetLogger("transport/rpc")

// callMethod is the JSON-RPC method of every request, the actual target is in the params
const callMethod = "call"

// NewJSONRPCClientTransport creates a transport for the /jsonrpc endpoint
func NewJSONRPCClientTransport() transport.IRPCClientTransport {
	return &jsonrpcClientTransport{}
}

type jsonrpcClientTransport struct {
	mu         sync.RWMutex
	serverURL  string
	client     *http.Client
	retryCount int
}

// callParams are the params of a call request
type callParams struct {
	Service string        `json:"service"`
	Method  string        `json:"method"`
	Args    []interface{} `json:"args"`
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *jsonrpcClientTransport) Connect(config common.ClientConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	// Create client with default transport
	client := &http.Client{
		Timeout: time.Duration(config.Timeout()) * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     time.Duration(config.Timeout()) * time.Second,
		},
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Set the client and server URL
	t.client = client
	t.serverURL = config.BaseURL() + "/jsonrpc"
	t.retryCount = config.Attempts()

	Logger.Debugf("jsonrpc transport ready for %s", t.serverURL)
	return nil
}

func (t *jsonrpcClientTransport) Call(ctx context.Context, service, method string, args ...interface{}) (interface{}, error) {
	t.mu.RLock()
	client, serverURL, retryCount := t.client, t.serverURL, t.retryCount
	t.mu.RUnlock()

	// Check if the transport is initialized
	if client == nil {
		return nil, transport.ErrNotConnected
	}

	if args == nil {
		args = []interface{}{}
	}

	// Create the request body
	id := jsonrpc2.NewStringID(uuid.NewString())
	call, err := jsonrpc2.NewCall(id, callMethod, callParams{Service: service, Method: method, Args: args})
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	reqBody, err := json.Marshal(call)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	// Send the request (with retries)
	var respBody []byte
	for i := 0; i < retryCount; i++ {
		respBody, err = post(ctx, client, serverURL, reqBody)
		if err == nil || ctx.Err() != nil {
			break
		}
		Logger.Debugf("%s.%s attempt %d/%d failed: %v", service, method, i+1, retryCount, err)
	}
	if err != nil {
		return nil, err
	}

	return decodeResponse(id, service, method, respBody)
}

func (t *jsonrpcClientTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Close the client
	if t.client != nil {
		t.client.CloseIdleConnections()
	}

	// Reset the client and server URL
	t.client = nil
	t.serverURL = ""

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// post sends the request body and returns the response body
func post(ctx context.Context, client *http.Client, serverURL string, body []byte) ([]byte, error) {
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	httpResponse, err := client.Do(httpRequest)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	// Check if the response status code is OK
	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http error: %s", httpResponse.Status)
	}

	// Read the response body
	return io.ReadAll(httpResponse.Body)
}

// decodeResponse decodes a JSON-RPC response and normalizes its result
func decodeResponse(id jsonrpc2.ID, service, method string, body []byte) (interface{}, error) {
	msg, err := jsonrpc2.DecodeMessage(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	resp, ok := msg.(*jsonrpc2.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected message %T, expected a response", msg)
	}
	if resp.ID() != id {
		return nil, fmt.Errorf("response id %v does not match request id %v", resp.ID(), id)
	}

	// Check if the response is an error response
	if err := resp.Err(); err != nil {
		remoteErr := &transport.RemoteError{Service: service, Method: method, Message: err.Error()}
		var wireErr *jsonrpc2.Error
		if errors.As(err, &wireErr) {
			remoteErr.Code = int(wireErr.Code)
			remoteErr.Message = wireErr.Message
		}
		return nil, remoteErr
	}

	result := resp.Result()
	if len(result) == 0 {
		return nil, nil
	}

	var value interface{}
	dec := json.NewDecoder(bytes.NewReader(result))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return common.Normalize(value), nil
}
