package resource

import "testing"

func allDescriptors() []Descriptor {
	return []Descriptor{
		Leads, Contacts, Companies, Deals, Tasks,
		Campaigns, Roles, Profiles, Attachments,
	}
}

// TestDescriptorsNeverExposeIdentifiers verifies no descriptor lets a caller
// write id or timestamps, and no default targets a required field.
func TestDescriptorsNeverExposeIdentifiers(t *testing.T) {
	for _, desc := range allDescriptors() {
		for _, field := range []string{"id", "created_at", "updated_at"} {
			if desc.FieldWritable(field) {
				t.Errorf("%s: %s must not be writable", desc.Name, field)
			}
		}
		for field := range desc.Defaults {
			for _, required := range desc.Required {
				if field == required {
					t.Errorf("%s: default on required field %s", desc.Name, field)
				}
			}
		}
	}
}

// TestDescriptorRequiredFieldsAreWritable verifies every required field can
// actually be supplied on create.
func TestDescriptorRequiredFieldsAreWritable(t *testing.T) {
	for _, desc := range allDescriptors() {
		for _, field := range desc.Required {
			if !desc.FieldWritable(field) {
				t.Errorf("%s: required field %s is not writable", desc.Name, field)
			}
		}
	}
}

// TestOnlyTasksAreOwnerScoped pins down which resources filter rows by the
// calling user at anonymous privilege.
func TestOnlyTasksAreOwnerScoped(t *testing.T) {
	for _, desc := range allDescriptors() {
		scoped := desc.OwnerField != ""
		if desc.Name == "tasks" && !scoped {
			t.Error("tasks must be owner scoped")
		}
		if desc.Name != "tasks" && scoped {
			t.Errorf("%s must not be owner scoped", desc.Name)
		}
	}
}

// TestFilterAllowed verifies the equality-filter allow-list.
func TestFilterAllowed(t *testing.T) {
	if !Leads.FilterAllowed("status") {
		t.Error("leads must allow status filter")
	}
	if Leads.FilterAllowed("first_name") {
		t.Error("leads must not allow filtering on first_name")
	}
	if Leads.FilterAllowed("") {
		t.Error("empty field is not a filter")
	}
}
