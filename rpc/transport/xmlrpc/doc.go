// Package xmlrpc implements the XML-RPC transport of the oconn client.
// Every service of the server has its own endpoint (/xmlrpc/common,
// /xmlrpc/object, /xmlrpc/db). Requests are encoded and decoded with the
// github.com/kolo/xmlrpc library and sent with net/http.
//
// Every request is bound to the context of the caller. When the context ends
// the request is cancelled and the context error is returned.
//
// Network failures and non-2xx answers are retried up to ClientConfig.RetryCount
// times. Faults raised by the server are returned as *transport.RemoteError and
// are never retried.
//
// Thread Safety:
//
//	The transport is safe for concurrent use. Calls to the same service run in
//	parallel on the shared connection pool.
package xmlrpc
