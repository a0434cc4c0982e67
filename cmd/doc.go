// Package cmd implements the command-line interface of oconn, a client for the
// remote object service of OpenERP/Odoo servers.
//
// The package is organized into several subpackages:
//
//   - server: Commands that need no login (ping, databases, version)
//   - object: Generic record operations (create, search, read, write, unlink, call, perf)
//   - attendance: Commands for the attendance register model
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// All connection flags can also be set as environment variables with the OCONN_ prefix
// (e.g. OCONN_PASSWORD) or in a .env file.
//
// See oconn -help for a list of all commands.
package cmd
