// Package client implements the client of the remote object service of an
// OpenERP/Odoo server. It wraps a transport (XML-RPC or JSON-RPC) and turns
// the untyped results into Go values.
//
// The package focuses on:
//   - Authentication (login) and the resulting immutable Session
//   - The CRUD style object methods: create, search, read, write, unlink
//   - Generic method invocation for everything else
//   - Hydration of records into caller defined types (Browse)
//   - Server calls that need no session (database list, connectivity probe)
//   - The attendance extension (model control.horario.register)
//
// Key Components:
//
//   - Connect: Connects the transport and logs in. The returned Session carries the
//     credentials and the user id; every object call sends database, user id,
//     password, model and method as its first five arguments.
//
//   - Session: Create, Search, SearchCount, Read, ReadOne, Write, Unlink and Call.
//     Search accepts the options WithOffset, WithLimit, WithOrder and WithReverse.
//
//   - Browse: Reads records and builds values of a caller defined type, either via
//     RecordUnmarshaler or by decoding the record using `odoo` struct tags.
//
//   - ListDatabases, CheckConnectivity, TestConnection, ServerVersion: Calls without
//     login. TestConnection gives up after two seconds.
//
//   - Attendance: Forwards the time-tracking calls of the attendance model.
//
// Usage Example:
//
//	config := common.ClientConfig{
//		Host:     "localhost",
//		Port:     8069,
//		Database: "demo",
//		Username: "admin",
//		Password: "admin",
//	}
//
//	s, err := client.Connect(ctx, config, xmlrpc.NewXMLRPCClientTransport())
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	ids, _ := s.Search(ctx, "res.partner", common.NewDomain(
//		common.Condition("is_company", "=", true),
//	), client.WithLimit(10))
//	partners, _ := client.Browse[Partner](ctx, s, "res.partner", ids, []string{"name"})
//
// Error Handling:
//
//	All operations return explicit errors. Errors raised by the server are
//	*transport.RemoteError, results of the wrong shape ErrUnexpectedResponse.
//
// Thread Safety:
//
//	A Session is immutable and can be used concurrently from multiple goroutines
//	as long as its transport is thread-safe (both provided transports are).
package client
