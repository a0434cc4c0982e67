// Package common provides core data structures and utilities shared across
// the oconn client. It defines the configuration, the protocol vocabulary of
// the remote object service and helpers to work with untyped RPC results.
//
// The package focuses on:
//   - Configuration of the connection (server address, credentials, transport)
//   - Service and method names of the remote object service
//   - Conversion of untyped results (ids, records, booleans, dates)
//   - Custom logging implementation integrated with the Dragonboat logger facade
//   - Call metrics
//
// Key Components:
//
//   - ClientConfig: Server address, credentials, protocol and transport parameters.
//     BaseURL derives the server url, String prints the configuration with the
//     password masked.
//
//   - Domain, Values, Context: Argument shapes of the object service. A Domain is a
//     list of conditions created with Condition, combined with the prefix operators
//     DomainAnd, DomainOr and DomainNot.
//
//   - Record: The field name -> value mapping returned by read.
//
//   - ToInt64, ToBool, ToIDs, ToRecords, Normalize: Conversion of raw results. The
//     server answers with untyped values, these helpers turn them into Go types and
//     report ErrUnexpectedType otherwise.
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's logger
//     package. All packages obtain their logger with logger.GetLogger(name).
//
//   - ObserveCall / WriteMetrics: Counters and histograms of all RPC calls.
package common
