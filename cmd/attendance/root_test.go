package attendance

import "testing"

// TestParseEmployeeID tests the employee id argument
func TestParseEmployeeID(t *testing.T) {
	if id, err := parseEmployeeID("42"); err != nil || id != 42 {
		t.Errorf("parseEmployeeID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "abc", "1.5"} {
		if _, err := parseEmployeeID(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

// TestRangePeriods tests that every period is offered for completion
func TestRangePeriods(t *testing.T) {
	want := map[string]bool{"today": true, "yesterday": true, "week": true, "month": true}
	if len(rangeCmd.ValidArgs) != len(want) {
		t.Fatalf("Unexpected periods %v", rangeCmd.ValidArgs)
	}
	for _, p := range rangeCmd.ValidArgs {
		if !want[p] {
			t.Errorf("Unexpected period %s", p)
		}
	}
}
