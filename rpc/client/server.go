package client

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/ValentinKolb/oconn/rpc/transport"
	"time"
)

// --------------------------------------------------------------------------
// Calls that need no session
// --------------------------------------------------------------------------

// probeTimeout is the fixed deadline of TestConnection
var probeTimeout = 2 * time.Second

// withTransport connects the transport, runs fn and closes the transport again
func withTransport(config common.ClientConfig, t transport.IRPCClientTransport, fn func() error) error {
	if err := t.Connect(config); err != nil {
		return err
	}
	defer func() {
		if err := t.Close(); err != nil {
			Logger.Warningf("failed to close transport: %v", err)
		}
	}()
	return fn()
}

// ListDatabases returns the names of the databases available on the server.
// The transport is connected for the call and closed afterward.
func ListDatabases(ctx context.Context, config common.ClientConfig, t transport.IRPCClientTransport) ([]string, error) {
	var databases []string
	err := withTransport(config, t, func() error {
		result, err := invokeRPCCall(ctx, t, common.MethodList, common.ServiceDB, common.MethodList)
		if err != nil {
			return fmt.Errorf("list databases: %w", err)
		}

		list, ok := result.([]interface{})
		if !ok {
			return unexpected(common.ServiceDB, common.MethodList, fmt.Errorf("expected list, got %T", result))
		}

		databases = make([]string, 0, len(list))
		for _, item := range list {
			// non string entries are skipped
			if name, ok := item.(string); ok {
				databases = append(databases, name)
			}
		}
		return nil
	})
	return databases, err
}

// CheckConnectivity calls common.check_connectivity and interprets the result as boolean.
// The transport is connected for the call and closed afterward.
func CheckConnectivity(ctx context.Context, config common.ClientConfig, t transport.IRPCClientTransport) (bool, error) {
	var ok bool
	err := withTransport(config, t, func() error {
		result, err := invokeRPCCall(ctx, t, common.MethodCheckConnectivity, common.ServiceCommon, common.MethodCheckConnectivity)
		if err != nil {
			return err
		}
		ok = common.ToBool(common.ToString(result))
		return nil
	})
	return ok, err
}

// TestConnection probes the server with CheckConnectivity and a fixed deadline of two seconds.
// The probe runs in its own goroutine, if it does not finish in time (or fails) the server
// is considered not connected.
func TestConnection(config common.ClientConfig, t transport.IRPCClientTransport) bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	type probeResult struct {
		ok  bool
		err error
	}
	done := make(chan probeResult, 1)

	go func() {
		ok, err := CheckConnectivity(ctx, config, t)
		done <- probeResult{ok: ok, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			Logger.Debugf("connection test of %s failed: %v", config.BaseURL(), res.err)
			return false
		}
		return res.ok
	case <-ctx.Done():
		Logger.Debugf("connection test of %s timed out after %s", config.BaseURL(), probeTimeout)
		return false
	}
}

// ServerVersion returns the version information of the server (common.version)
func ServerVersion(ctx context.Context, config common.ClientConfig, t transport.IRPCClientTransport) (common.Record, error) {
	var version common.Record
	err := withTransport(config, t, func() error {
		result, err := invokeRPCCall(ctx, t, common.MethodVersion, common.ServiceCommon, common.MethodVersion)
		if err != nil {
			return fmt.Errorf("server version: %w", err)
		}
		version, err = common.ToRecord(result)
		if err != nil {
			return unexpected(common.ServiceCommon, common.MethodVersion, err)
		}
		return nil
	})
	return version, err
}
