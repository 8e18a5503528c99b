package resource

import (
	"testing"

	"pipecrm/internal/models"
)

// TestNormalizeTrimsStrings verifies string fields are trimmed before
// validation so "  x  " satisfies a required field as "x".
func TestNormalizeTrimsStrings(t *testing.T) {
	out, err := Normalize(Leads, map[string]interface{}{
		"first_name": "  Ada  ",
		"last_name":  "Lovelace",
		"email":      " ada@example.com ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["first_name"] != "Ada" {
		t.Errorf("first_name = %q, want %q", out["first_name"], "Ada")
	}
	if out["email"] != "ada@example.com" {
		t.Errorf("email = %q, want %q", out["email"], "ada@example.com")
	}
}

// TestNormalizeReportsAllMissingRequired verifies every failing required
// field appears in a single validation error, not just the first one.
func TestNormalizeReportsAllMissingRequired(t *testing.T) {
	_, err := Normalize(Leads, map[string]interface{}{
		"first_name": "   ",
		"email":      nil,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if err.Class != ClassValidation {
		t.Fatalf("class = %v, want ClassValidation", err.Class)
	}
	for _, field := range []string{"first_name", "last_name", "email"} {
		if _, ok := err.Details[field]; !ok {
			t.Errorf("expected %q in details, got %v", field, err.Details)
		}
	}
}

// TestNormalizeDefaultsOnlyWhenAbsent verifies defaults fill absent keys but
// never overwrite an explicitly supplied value, even a falsy one.
func TestNormalizeDefaultsOnlyWhenAbsent(t *testing.T) {
	out, err := Normalize(Deals, map[string]interface{}{"name": "Big deal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["stage"] != models.DealStageLead {
		t.Errorf("stage = %v, want default %q", out["stage"], models.DealStageLead)
	}
	if out["probability"] != 0 {
		t.Errorf("probability = %v, want default 0", out["probability"])
	}

	out, err = Normalize(Deals, map[string]interface{}{
		"name":  "Big deal",
		"stage": models.DealStageProposal,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["stage"] != models.DealStageProposal {
		t.Errorf("stage = %v, want supplied %q", out["stage"], models.DealStageProposal)
	}
}

// TestNormalizeDoesNotMutateInput verifies the caller's map is left intact.
func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := map[string]interface{}{
		"first_name": "  Ada  ",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
	}
	if _, err := Normalize(Leads, raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw["first_name"] != "  Ada  " {
		t.Errorf("input mutated: first_name = %q", raw["first_name"])
	}
	if _, ok := raw["status"]; ok {
		t.Error("input mutated: default status written into caller's map")
	}
}

// TestNormalizeUpdateDropsNonWritable verifies identifiers, timestamps and
// unknown fields are stripped while explicit nulls survive as clears.
func TestNormalizeUpdateDropsNonWritable(t *testing.T) {
	out := NormalizeUpdate(Tasks, map[string]interface{}{
		"id":         "11111111-1111-1111-1111-111111111111",
		"created_at": "2026-01-01T00:00:00Z",
		"title":      "  follow up  ",
		"deal_id":    nil,
		"bogus":      "x",
	})

	if _, ok := out["id"]; ok {
		t.Error("id must never be writable")
	}
	if _, ok := out["created_at"]; ok {
		t.Error("created_at must never be writable")
	}
	if _, ok := out["bogus"]; ok {
		t.Error("unknown field must be dropped")
	}
	if out["title"] != "follow up" {
		t.Errorf("title = %q, want trimmed", out["title"])
	}
	value, ok := out["deal_id"]
	if !ok || value != nil {
		t.Errorf("explicit null must survive as a clear, got %v present=%v", value, ok)
	}
}

// TestDecodeRejectsUnknownFields verifies Decode fails closed on fields the
// model does not declare.
func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode[models.Company](map[string]interface{}{
		"name":      "Acme",
		"not_a_col": true,
	})
	if err == nil {
		t.Fatal("expected decode error for unknown field")
	}
}

// TestDecodeMapsSnakeCase verifies the snake_case wire names land on the
// right struct fields.
func TestDecodeMapsSnakeCase(t *testing.T) {
	lead, err := Decode[models.Lead](map[string]interface{}{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"status":     models.LeadStatusNew,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.FirstName != "Ada" || lead.LastName != "Lovelace" {
		t.Errorf("name = %q %q, want Ada Lovelace", lead.FirstName, lead.LastName)
	}
	if lead.Status != models.LeadStatusNew {
		t.Errorf("status = %q, want %q", lead.Status, models.LeadStatusNew)
	}
}
