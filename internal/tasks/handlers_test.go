package tasks

import (
	"encoding/json"
	"testing"
)

// TestRecurrence verifies the settings key that turns a campaign into a
// recurring one.
func TestRecurrence(t *testing.T) {
	cases := []struct {
		name     string
		settings map[string]interface{}
		want     string
	}{
		{"absent", map[string]interface{}{"channel": "email"}, ""},
		{"empty", map[string]interface{}{"recurrence": ""}, ""},
		{"whitespace", map[string]interface{}{"recurrence": "   "}, ""},
		{"non-string", map[string]interface{}{"recurrence": 5}, ""},
		{"set", map[string]interface{}{"recurrence": "0 9 * * 1"}, "0 9 * * 1"},
		{"padded", map[string]interface{}{"recurrence": " 0 9 * * 1 "}, "0 9 * * 1"},
	}
	for _, tc := range cases {
		if got := recurrence(tc.settings); got != tc.want {
			t.Errorf("%s: recurrence = %q, want %q", tc.name, got, tc.want)
		}
	}
}

// TestCampaignDispatchPayloadRoundTrip verifies the payload a rerun enqueues
// is readable by the dispatch handler.
func TestCampaignDispatchPayloadRoundTrip(t *testing.T) {
	data, err := marshalPayload(CampaignDispatchPayload{CampaignID: "abc"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var payload CampaignDispatchPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.CampaignID != "abc" {
		t.Errorf("campaign_id = %q, want abc", payload.CampaignID)
	}
}
