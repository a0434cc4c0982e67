package serializer

import (
	"errors"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/google/go-cmp/cmp"
	"strings"
	"testing"
	"time"
)

// testSerializers is a map of serializer name to factory function (readable formats only)
var testSerializers = map[string]func() IResultSerializer{
	"JSON": NewJSONSerializer,
	"YAML": NewYAMLSerializer,
}

// testRecords creates records the way they come back from a read call
func testRecords() []common.Record {
	return []common.Record{
		{"id": int64(1), "name": "Alice", "active": true},
		{"id": int64(2), "name": "Bob", "active": false, "tags": []interface{}{"a", "b"}},
	}
}

// TestSerializerRoundTrip tests that records can be serialized and read back as maps
func TestSerializerRoundTrip(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			data, err := serializer.Serialize(testRecords())
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			var result []map[string]interface{}
			if err := serializer.Deserialize(data, &result); err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}

			if len(result) != 2 {
				t.Fatalf("Expected 2 records, got %d", len(result))
			}
			if result[0]["name"] != "Alice" || result[1]["active"] != false {
				t.Errorf("Unexpected records after round trip: %v", result)
			}
			if diff := cmp.Diff([]interface{}{"a", "b"}, result[1]["tags"]); diff != "" {
				t.Errorf("Unexpected tags (-want +got):\n%s", diff)
			}
		})
	}
}

// TestJSONIsIndented tests the json output format
func TestJSONIsIndented(t *testing.T) {
	data, err := NewJSONSerializer().Serialize(map[string]interface{}{"id": 1})
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}
	if string(data) != "{\n  \"id\": 1\n}" {
		t.Errorf("Unexpected json output %q", data)
	}
}

// TestTextSerializer tests the text rendering of the result shapes
func TestTextSerializer(t *testing.T) {
	serializer := NewTextSerializer(false)
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := map[string]struct {
		in   interface{}
		want string
	}{
		"scalar":  {in: int64(42), want: "42\n"},
		"bool":    {in: true, want: "true\n"},
		"nil":     {in: nil, want: "-\n"},
		"ids":     {in: []int64{3, 1, 2}, want: "3\n1\n2\n"},
		"strings": {in: []string{"demo", "prod"}, want: "demo\nprod\n"},
		"record": {
			in:   common.Record{"name": "Alice", "id": int64(1), "date": date},
			want: "date: 2024-01-02 03:04:05\nid: 1\nname: Alice\n",
		},
		"records": {
			in:   testRecords(),
			want: "active: true\nid: 1\nname: Alice\n\nactive: false\nid: 2\nname: Bob\ntags: [a, b]\n",
		},
		"nested map": {
			in:   map[string]interface{}{"version": map[string]interface{}{"major": 16, "minor": 0}},
			want: "version: {major=16, minor=0}\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := serializer.Serialize(tt.in)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(data)); diff != "" {
				t.Errorf("Unexpected output (-want +got):\n%s", diff)
			}
		})
	}
}

// TestTextSerializerColor tests that keys are highlighted when colors are enabled
func TestTextSerializerColor(t *testing.T) {
	data, err := NewTextSerializer(true).Serialize(common.Record{"id": int64(1)})
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}
	if !strings.Contains(string(data), "\x1b[") {
		t.Errorf("Expected escape sequences in %q", data)
	}
}

// TestTextSerializerWriteOnly tests that text output cannot be parsed
func TestTextSerializerWriteOnly(t *testing.T) {
	var v interface{}
	if err := NewTextSerializer(false).Deserialize([]byte("id: 1"), &v); !errors.Is(err, ErrWriteOnly) {
		t.Errorf("Expected ErrWriteOnly, got %v", err)
	}
}
