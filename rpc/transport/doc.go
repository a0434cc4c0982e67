// Package transport defines the interface and abstractions for talking to the
// remote object service. It provides a common contract that all wire protocol
// implementations must fulfill, so the client is protocol-agnostic.
//
// The package focuses on:
//   - Defining a clear interface for client transport layers
//   - Service based request routing (common, object, db)
//   - Enabling multiple protocol implementations (XML-RPC, JSON-RPC)
//
// Key Components:
//
//   - IRPCClientTransport: Interface for client-side transport implementations that
//     handles connection management and calls.
//
//   - RemoteError: Errors raised by the server. Transports distinguish them from
//     network failures, only the latter are retried.
//
// Implementations:
//
//   - xmlrpc: The classic /xmlrpc/<service> endpoints.
//   - jsonrpc: The /jsonrpc endpoint using JSON-RPC 2.0.
package transport
