package utils

import (
	"testing"
)

// TestJSONMapRoundTrip verifies settings maps survive the trip through the
// jsonb column type.
func TestJSONMapRoundTrip(t *testing.T) {
	in := map[string]interface{}{
		"channel":   "email",
		"batch":     float64(50),
		"dry_run":   true,
		"templates": []interface{}{"welcome", "followup"},
	}

	data, err := MapToJSON(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out, err := JSONToMap(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out["channel"] != "email" || out["batch"] != float64(50) || out["dry_run"] != true {
		t.Errorf("round trip lost values: %v", out)
	}
}

// TestJSONToMapEmpty verifies a never-written jsonb column reads as an empty
// map rather than an error.
func TestJSONToMapEmpty(t *testing.T) {
	out, err := JSONToMap(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("out = %v, want empty", out)
	}
}
