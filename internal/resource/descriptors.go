package resource

import "pipecrm/internal/models"

// The fixed catalog of CRM resources. Each descriptor enumerates the
// validation contract that used to be duplicated across one handler per
// resource.

var Leads = Descriptor{
	Name:     "leads",
	Singular: "Lead",
	Required: []string{"first_name", "last_name", "email"},
	Defaults: map[string]interface{}{"status": models.LeadStatusNew},
	Filters:  []string{"status", "source", "owner_id", "company_id", "email"},
	Includes: []string{"Company", "Owner"},
	Writable: []string{
		"first_name", "last_name", "email", "phone", "status", "source",
		"company_id", "owner_id", "metadata",
	},
}

var Contacts = Descriptor{
	Name:     "contacts",
	Singular: "Contact",
	Required: []string{"first_name", "last_name", "email"},
	Filters:  []string{"owner_id", "company_id", "email"},
	Includes: []string{"Company", "Owner"},
	Writable: []string{
		"first_name", "last_name", "email", "phone", "title",
		"company_id", "owner_id",
	},
}

var Companies = Descriptor{
	Name:     "companies",
	Singular: "Company",
	Required: []string{"name"},
	Filters:  []string{"industry", "owner_id", "domain"},
	Includes: []string{"Owner"},
	Writable: []string{"name", "domain", "industry", "size", "owner_id"},
}

var Deals = Descriptor{
	Name:     "deals",
	Singular: "Deal",
	Required: []string{"name"},
	Defaults: map[string]interface{}{
		"stage":       models.DealStageLead,
		"probability": 0,
	},
	Filters:  []string{"stage", "owner_id", "company_id", "contact_id", "lead_id"},
	Includes: []string{"Lead", "Contact", "Company", "Owner"},
	Writable: []string{
		"name", "amount", "stage", "probability", "close_date",
		"lead_id", "contact_id", "company_id", "owner_id",
	},
}

var Tasks = Descriptor{
	Name:     "tasks",
	Singular: "Task",
	Required: []string{"title"},
	Defaults: map[string]interface{}{
		"status":   models.TaskStatusTodo,
		"priority": models.TaskPriorityMedium,
	},
	Filters:    []string{"status", "priority", "deal_id", "contact_id", "owner_id"},
	Includes:   []string{"Deal", "Contact", "Owner"},
	OwnerField: "owner_id",
	Writable: []string{
		"title", "description", "status", "priority", "due_date",
		"deal_id", "contact_id", "owner_id",
	},
}

var Campaigns = Descriptor{
	Name:     "campaigns",
	Singular: "Campaign",
	Required: []string{"name"},
	Defaults: map[string]interface{}{"status": models.CampaignStatusDraft},
	Filters:  []string{"status", "owner_id"},
	Includes: []string{"Owner"},
	Writable: []string{
		"name", "description", "status", "scheduled_for", "settings", "owner_id",
	},
}

var Roles = Descriptor{
	Name:     "roles",
	Singular: "Role",
	Required: []string{"name"},
	Filters:  []string{"name"},
	Writable: []string{"name", "description", "permissions"},
}

var Profiles = Descriptor{
	Name:     "profiles",
	Singular: "Profile",
	Required: []string{"email"},
	Defaults: map[string]interface{}{"role": models.RoleMember},
	Filters:  []string{"role", "email"},
	Writable: []string{"email", "first_name", "last_name", "role", "preferences"},
}

var Attachments = Descriptor{
	Name:     "attachments",
	Singular: "Attachment",
	Required: []string{"name", "path"},
	Filters:  []string{"deal_id", "uploader_id"},
	Includes: []string{"Deal", "Uploader"},
	Writable: []string{
		"name", "path", "size", "content_type", "deal_id", "uploader_id",
	},
}
