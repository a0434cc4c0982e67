package client

import (
	"context"
	"errors"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/ValentinKolb/oconn/rpc/transport"
	"github.com/google/go-cmp/cmp"
	"strings"
	"testing"
)

func testConfig() common.ClientConfig {
	return common.ClientConfig{
		Host:     "erp.example.com",
		Port:     8069,
		Database: "demo",
		Username: "admin",
		Password: "secret",
	}
}

// connectFake creates a session on a fake transport
func connectFake(t *testing.T, f *fakeTransport) *Session {
	t.Helper()
	s, err := Connect(context.Background(), testConfig(), f)
	if err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	return s
}

// TestConnect tests the login exchange and the session getters
func TestConnect(t *testing.T) {
	f := newFakeTransport()
	s := connectFake(t, f)

	want := fakeCall{Service: "common", Method: "login", Args: []interface{}{"demo", "admin", "secret"}}
	if diff := cmp.Diff(want, f.lastCall()); diff != "" {
		t.Errorf("Unexpected login call (-want +got):\n%s", diff)
	}

	if s.UserID() != 7 {
		t.Errorf("Expected uid 7, got %d", s.UserID())
	}
	if s.Server() != "erp.example.com" || s.Port() != 8069 || s.Database() != "demo" || s.UserName() != "admin" {
		t.Errorf("Unexpected session getters: %s", s)
	}
}

// TestConnectLoginFailed tests that a false uid is reported as ErrLoginFailed
func TestConnectLoginFailed(t *testing.T) {
	for name, result := range map[string]interface{}{
		"false": false,
		"zero":  int64(0),
		"nil":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			f := newFakeTransport()
			f.loginResult = result

			_, err := Connect(context.Background(), testConfig(), f)
			if !errors.Is(err, ErrLoginFailed) {
				t.Fatalf("Expected ErrLoginFailed, got %v", err)
			}
			if f.closed != 1 {
				t.Errorf("Expected the transport to be closed after a failed login")
			}
		})
	}
}

// TestSessionStringMasksPassword tests the debug representation
func TestSessionStringMasksPassword(t *testing.T) {
	s := connectFake(t, newFakeTransport())
	str := s.String()

	if strings.Contains(str, "secret") {
		t.Errorf("String() must not contain the password:\n%s", str)
	}
	for _, want := range []string{"server: erp.example.com", "port: 8069", "database: demo", "user: admin", "id: 7"} {
		if !strings.Contains(str, want) {
			t.Errorf("String() does not contain %q:\n%s", want, str)
		}
	}
}

// TestSessionClose tests that calls fail after Close
func TestSessionClose(t *testing.T) {
	s := connectFake(t, newFakeTransport())
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if _, err := s.Call(context.Background(), "res.partner", "name_get"); !errors.Is(err, transport.ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected, got %v", err)
	}
}

// TestExecuteArgs tests the first five positional arguments of object calls
func TestExecuteArgs(t *testing.T) {
	f := newFakeTransport().on("res.partner", "name_search", func(args []interface{}) (interface{}, error) {
		return []interface{}{}, nil
	})
	s := connectFake(t, f)

	if _, err := s.Call(context.Background(), "res.partner", "name_search", "Ali", []interface{}{}); err != nil {
		t.Fatalf("Call() failed: %v", err)
	}

	want := fakeCall{
		Service: "object",
		Method:  "execute",
		Args:    []interface{}{"demo", int64(7), "secret", "res.partner", "name_search", "Ali", []interface{}{}},
	}
	if diff := cmp.Diff(want, f.lastCall()); diff != "" {
		t.Errorf("Unexpected call (-want +got):\n%s", diff)
	}
}

// TestCallMetrics tests that calls are counted per method
func TestCallMetrics(t *testing.T) {
	f := newFakeTransport().on("res.users", "check_metrics", func(args []interface{}) (interface{}, error) {
		return true, nil
	})
	s := connectFake(t, f)

	before := common.CallCount(common.ServiceObject, "check_metrics")
	errorsBefore := common.ErrorCount(common.ServiceObject, "missing_metrics")

	_, _ = s.Call(context.Background(), "res.users", "check_metrics")
	_, _ = s.Call(context.Background(), "res.users", "missing_metrics")

	if got := common.CallCount(common.ServiceObject, "check_metrics"); got != before+1 {
		t.Errorf("Expected %d calls, got %d", before+1, got)
	}
	if got := common.ErrorCount(common.ServiceObject, "missing_metrics"); got != errorsBefore+1 {
		t.Errorf("Expected %d errors, got %d", errorsBefore+1, got)
	}
}
