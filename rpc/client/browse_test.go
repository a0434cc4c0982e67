package client

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/google/go-cmp/cmp"
	"testing"
	"time"
)

type partner struct {
	ID      int64     `odoo:"id"`
	Name    string    `odoo:"name"`
	Email   string    `odoo:"email"`
	Active  bool      `odoo:"active"`
	Parent  Many2One  `odoo:"parent_id"`
	Updated time.Time `odoo:"write_date"`
	Birth   time.Time `odoo:"birthday"`
	Source  string    `odoo:"extra_0"`
	Rank    int       `odoo:"extra_1"`
}

// employee builds itself from the record
type employee struct {
	name  string
	extra interface{}
}

func (e *employee) UnmarshalRecord(record common.Record) error {
	name, ok := record["name"].(string)
	if !ok {
		return fmt.Errorf("missing name")
	}
	e.name = name
	e.extra = record["extra_0"]
	return nil
}

func partnerTransport() *fakeTransport {
	return newFakeTransport().on("res.partner", "read", func(args []interface{}) (interface{}, error) {
		return []interface{}{
			map[string]interface{}{
				"id":         int64(1),
				"name":       "Alice",
				"email":      false,
				"active":     true,
				"parent_id":  []interface{}{int64(9), "ACME"},
				"write_date": "2024-03-01 12:30:00",
				"birthday":   "1990-05-17",
			},
			map[string]interface{}{
				"id":         int64(2),
				"name":       "Bob",
				"email":      "bob@example.com",
				"active":     false,
				"parent_id":  false,
				"write_date": false,
				"birthday":   false,
			},
		}, nil
	})
}

// TestBrowseStruct tests decoding into tagged structs
func TestBrowseStruct(t *testing.T) {
	s := connectFake(t, partnerTransport())

	partners, err := Browse[partner](context.Background(), s, "res.partner", []int64{1, 2}, []string{"name"}, "mobile", 3)
	if err != nil {
		t.Fatalf("Browse() failed: %v", err)
	}

	want := []partner{
		{
			ID:      1,
			Name:    "Alice",
			Active:  true,
			Parent:  Many2One{ID: 9, Name: "ACME"},
			Updated: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
			Birth:   time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
			Source:  "mobile",
			Rank:    3,
		},
		{
			ID:     2,
			Name:   "Bob",
			Email:  "bob@example.com",
			Source: "mobile",
			Rank:   3,
		},
	}
	if diff := cmp.Diff(want, partners); diff != "" {
		t.Errorf("Unexpected partners (-want +got):\n%s", diff)
	}
}

// TestBrowseUnmarshaler tests types implementing RecordUnmarshaler
func TestBrowseUnmarshaler(t *testing.T) {
	s := connectFake(t, partnerTransport())

	employees, err := Browse[employee](context.Background(), s, "res.partner", []int64{1, 2}, nil, 99)
	if err != nil {
		t.Fatalf("Browse() failed: %v", err)
	}
	if len(employees) != 2 || employees[0].name != "Alice" || employees[1].name != "Bob" {
		t.Fatalf("Unexpected employees %+v", employees)
	}
	if employees[0].extra != 99 {
		t.Errorf("Expected extra 99, got %v", employees[0].extra)
	}
}

// TestBrowseErrors tests that read and hydration failures are BrowseErrors
func TestBrowseErrors(t *testing.T) {
	f := newFakeTransport().on("res.partner", "read", func(args []interface{}) (interface{}, error) {
		return []interface{}{map[string]interface{}{"id": int64(1)}}, nil
	})
	s := connectFake(t, f)
	ctx := context.Background()

	// hydration fails (no name)
	_, err := Browse[employee](ctx, s, "res.partner", []int64{1}, nil)
	var browseErr *BrowseError
	if !errors.As(err, &browseErr) || browseErr.Model != "res.partner" {
		t.Errorf("Expected BrowseError for res.partner, got %v", err)
	}

	// read fails (no handler)
	_, err = Browse[partner](ctx, s, "res.users", []int64{1}, nil)
	if !errors.As(err, &browseErr) || browseErr.Model != "res.users" {
		t.Errorf("Expected BrowseError for res.users, got %v", err)
	}
}

// TestWithExtrasCopies tests that the input record is not modified
func TestWithExtrasCopies(t *testing.T) {
	record := common.Record{"id": int64(1)}
	got := withExtras(record, []interface{}{"a", "b"})

	if len(record) != 1 {
		t.Errorf("Input record was modified: %v", record)
	}
	want := common.Record{"id": int64(1), "extra_0": "a", "extra_1": "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unexpected record (-want +got):\n%s", diff)
	}
}

// TestToMany2One tests the accepted many2one representations
func TestToMany2One(t *testing.T) {
	tests := map[string]struct {
		in      interface{}
		want    Many2One
		wantErr bool
	}{
		"pair":      {in: []interface{}{int64(4), "Name"}, want: Many2One{ID: 4, Name: "Name"}},
		"bare id":   {in: int64(4), want: Many2One{ID: 4}},
		"float id":  {in: float64(4), want: Many2One{ID: 4}},
		"bad pair":  {in: []interface{}{int64(4)}, wantErr: true},
		"bad value": {in: "x", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := toMany2One(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("toMany2One() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("toMany2One() = %v, want %v", got, tt.want)
			}
		})
	}
}
