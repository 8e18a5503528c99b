package resource

// Descriptor declares everything the generic CRUD machinery needs to know
// about one resource: its wire/table name, validation contract, the filters a
// caller may use, the relations a read should try to embed, and whether rows
// are scoped to an owner.
//
// Field names are the snake_case JSON names, which match the database column
// names, so the same strings are used for validation, filtering and updates.
type Descriptor struct {
	// Name is the plural route segment and table name, e.g. "leads".
	Name string
	// Singular is the display name used in error messages, e.g. "Lead".
	Singular string
	// Required fields must be non-empty after trimming before a create is
	// attempted.
	Required []string
	// Defaults are applied only when the field is entirely absent from the
	// input, never over an explicit falsy value.
	Defaults map[string]interface{}
	// Filters is the allow-list of equality-filter query parameters.
	Filters []string
	// Includes names the relations to preload on reads. When the underlying
	// schema rejects them the query falls back to base fields only.
	Includes []string
	// Writable is the set of fields a create or partial update may touch.
	// Identifiers and timestamps are never writable.
	Writable []string
	// OwnerField, when set, names the column that scopes rows to the calling
	// user for repositories running at anonymous privilege.
	OwnerField string
}

// FilterAllowed reports whether a query parameter may be used as an equality
// filter. Unknown parameters are ignored by callers, not errors.
func (d Descriptor) FilterAllowed(field string) bool {
	for _, f := range d.Filters {
		if f == field {
			return true
		}
	}
	return false
}

// FieldWritable reports whether a create/update may set the field.
func (d Descriptor) FieldWritable(field string) bool {
	for _, f := range d.Writable {
		if f == field {
			return true
		}
	}
	return false
}
