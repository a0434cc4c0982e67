// Package jsonrpc implements the JSON-RPC transport of the oconn client.
// All services are reached through the single /jsonrpc endpoint of the
// server. A call is a JSON-RPC 2.0 request with method "call" and the
// params {"service": ..., "method": ..., "args": [...]}.
//
// Requests and responses are encoded with the message types of
// go.lsp.dev/jsonrpc2, every request gets a random uuid as id.
//
// Numbers are decoded as json.Number and normalized, so integers arrive as
// int64 exactly like with the XML-RPC transport.
//
// Thread Safety:
//
//	The transport is safe for concurrent use.
package jsonrpc
