// Package rpc provides a client for the remote object service of OpenERP/Odoo
// servers. It logs in to a database and calls model methods over the network.
//
// The package is organized into several subpackages:
//
//   - common: Configuration, protocol constants, conversion helpers for untyped
//     results, logging and call metrics.
//
//   - transport: Wire protocol abstraction with XML-RPC and JSON-RPC implementations.
//
//   - client: Sessions and the record operations (create, search, read, write,
//     unlink, call), record hydration, server utilities and the attendance extension.
//
//   - serializer: Output formats (text, JSON, YAML) used by the command line client.
package rpc
