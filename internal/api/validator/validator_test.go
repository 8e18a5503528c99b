package validator

import (
	"testing"

	"pipecrm/internal/models"
)

// TestValidateReportsAllFailures verifies every invalid field shows up in
// the formatted map, not just the first.
func TestValidateReportsAllFailures(t *testing.T) {
	v := New()

	lead := models.Lead{
		FirstName: "Ada",
		Email:     "not-an-email",
		Status:    "frozen",
	}
	err := v.Validate(&lead)
	if err == nil {
		t.Fatal("expected validation error")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("error = %T, want ValidationErrors", err)
	}

	formatted := verrs.Format()
	for _, field := range []string{"last_name", "email", "status"} {
		if _, present := formatted[field]; !present {
			t.Errorf("expected %q in %v", field, formatted)
		}
	}
}

// TestValidateEnumTags walks the custom enum validations through a valid and
// an invalid value each.
func TestValidateEnumTags(t *testing.T) {
	v := New()

	deal := models.Deal{Name: "d", Stage: models.DealStageClosedWon}
	if err := v.Validate(&deal); err != nil {
		t.Errorf("valid stage rejected: %v", err)
	}
	deal.Stage = "won"
	if err := v.Validate(&deal); err == nil {
		t.Error("invalid stage accepted")
	}

	task := models.Task{Title: "t", Status: models.TaskStatusInProgress, Priority: models.TaskPriorityHigh}
	if err := v.Validate(&task); err != nil {
		t.Errorf("valid task rejected: %v", err)
	}
	task.Priority = "urgent"
	if err := v.Validate(&task); err == nil {
		t.Error("invalid priority accepted")
	}

	profile := models.Profile{Email: "a@b.com", Role: "root"}
	if err := v.Validate(&profile); err == nil {
		t.Error("invalid role accepted")
	}
}

// TestValidateProbabilityBounds verifies the 0-100 window on deal
// probability.
func TestValidateProbabilityBounds(t *testing.T) {
	v := New()

	deal := models.Deal{Name: "d", Probability: 100}
	if err := v.Validate(&deal); err != nil {
		t.Errorf("probability 100 rejected: %v", err)
	}
	deal.Probability = 101
	if err := v.Validate(&deal); err == nil {
		t.Error("probability 101 accepted")
	}
}

// TestValidateUsesJSONNames verifies failures are keyed by wire names, not Go
// field names.
func TestValidateUsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&models.Contact{})
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("error = %T, want ValidationErrors", err)
	}
	formatted := verrs.Format()
	if _, present := formatted["first_name"]; !present {
		t.Errorf("expected snake_case key, got %v", formatted)
	}
	if _, present := formatted["FirstName"]; present {
		t.Error("Go field name leaked into validation output")
	}
}
