package object

import (
	"bytes"
	"context"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/client"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/ValentinKolb/oconn/rpc/transport"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"sync"
	"testing"
)

// recordingTransport logs in as uid 7 and answers object calls with the result
// registered for the object method. It records the method specific args.
type recordingTransport struct {
	mu      sync.Mutex
	results map[string]interface{}
	method  string
	args    []interface{}
}

func (r *recordingTransport) Connect(common.ClientConfig) error { return nil }

func (r *recordingTransport) Call(_ context.Context, service, method string, args ...interface{}) (interface{}, error) {
	if service == common.ServiceCommon && method == common.MethodLogin {
		return int64(7), nil
	}
	if service != common.ServiceObject || len(args) < 5 {
		return nil, fmt.Errorf("unexpected call %s.%s", service, method)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.method = fmt.Sprint(args[4])
	r.args = args[5:]
	if result, ok := r.results[r.method]; ok {
		return result, nil
	}
	return nil, &transport.RemoteError{Service: service, Method: r.method, Message: "not implemented"}
}

func (r *recordingTransport) Close() error { return nil }

// withSession logs in with a recording transport and installs the session for the commands
func withSession(t *testing.T, results map[string]interface{}) *recordingTransport {
	t.Helper()
	tr := &recordingTransport{results: results}
	s, err := client.Connect(context.Background(), common.ClientConfig{Host: "localhost", Database: "demo"}, tr)
	if err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	old := session
	session = s
	t.Cleanup(func() { session = old })
	return tr
}

// run executes the command with the given flags and returns its output
func run(t *testing.T, cmd *cobra.Command, flags map[string]string, args ...string) string {
	t.Helper()
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("failed to set flag %s: %v", name, err)
		}
	}
	t.Cleanup(func() {
		for name := range flags {
			_ = cmd.Flags().Set(name, cmd.Flags().Lookup(name).DefValue)
		}
	})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	if err := cmd.RunE(cmd, args); err != nil {
		t.Fatalf("%s failed: %v", cmd.Name(), err)
	}
	return buf.String()
}

// TestSearchCommand tests the dispatch of the search flags
func TestSearchCommand(t *testing.T) {
	tests := map[string]struct {
		flags      map[string]string
		args       []string
		wantMethod string
		wantArgs   []interface{}
		wantOut    string
	}{
		"ids": {
			args:       []string{"res.partner"},
			wantMethod: common.MethodSearch,
			wantArgs:   []interface{}{[]interface{}{}, 0, 0, false},
			wantOut:    "1\n2\n3\n",
		},
		"options and reverse": {
			flags:      map[string]string{"offset": "5", "limit": "3", "order": "name desc", "reverse": "true"},
			args:       []string{"res.partner", `[["name", "ilike", "a"]]`},
			wantMethod: common.MethodSearch,
			wantArgs: []interface{}{
				[]interface{}{[]interface{}{"name", "ilike", "a"}}, 5, 3, "name desc",
			},
			wantOut: "3\n2\n1\n",
		},
		"count": {
			flags:      map[string]string{"count": "true", "limit": "3"},
			args:       []string{"res.partner", `[["active", "=", true]]`},
			wantMethod: common.MethodSearchCount,
			wantArgs:   []interface{}{[]interface{}{[]interface{}{"active", "=", true}}},
			wantOut:    "42\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tr := withSession(t, map[string]interface{}{
				common.MethodSearch:      []interface{}{int64(1), int64(2), int64(3)},
				common.MethodSearchCount: int64(42),
			})

			out := run(t, searchCmd, tt.flags, tt.args...)

			if tr.method != tt.wantMethod {
				t.Errorf("Expected method %s, got %s", tt.wantMethod, tr.method)
			}
			if diff := cmp.Diff(tt.wantArgs, tr.args); diff != "" {
				t.Errorf("Unexpected args (-want +got):\n%s", diff)
			}
			if out != tt.wantOut {
				t.Errorf("Unexpected output %q, want %q", out, tt.wantOut)
			}
		})
	}
}

// TestCreateCommandContext tests that the context flag is sent after the values
func TestCreateCommandContext(t *testing.T) {
	tr := withSession(t, map[string]interface{}{common.MethodCreate: int64(12)})

	out := run(t, createCmd, map[string]string{"context": `{"lang": "de_DE"}`}, "res.partner", `{"name": "Alice", "age": 30}`)

	want := []interface{}{
		map[string]interface{}{"name": "Alice", "age": int64(30)},
		map[string]interface{}{"lang": "de_DE"},
	}
	if diff := cmp.Diff(want, tr.args); diff != "" {
		t.Errorf("Unexpected args (-want +got):\n%s", diff)
	}
	if out != "12\n" {
		t.Errorf("Unexpected output %q", out)
	}
}

// TestContextFlag tests the parsing of the context flag
func TestContextFlag(t *testing.T) {
	tests := map[string]struct {
		value   string
		want    common.Context
		wantErr bool
	}{
		"unset":   {value: "", want: nil},
		"object":  {value: `{"lang": "de_DE", "active_test": false}`, want: common.Context{"lang": "de_DE", "active_test": false}},
		"list":    {value: `[1]`, wantErr: true},
		"invalid": {value: `{`, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if err := writeCmd.Flags().Set("context", tt.value); err != nil {
				t.Fatalf("failed to set flag: %v", err)
			}
			defer func() { _ = writeCmd.Flags().Set("context", "") }()

			got, err := contextFlag(writeCmd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("contextFlag() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Unexpected context (-want +got):\n%s", diff)
			}
		})
	}
}
