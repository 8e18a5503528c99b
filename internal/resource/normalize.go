package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize trims string fields, verifies the descriptor's required fields
// and applies defaults for absent optional fields. It runs before any store
// call and never mutates its input.
//
// A required field that is absent, null, or empty after trimming fails
// validation; every failing field is reported in a single error. Defaults are
// applied only when the key is entirely absent; an explicit 0, "" or false
// is kept as supplied.
func Normalize(desc Descriptor, raw map[string]interface{}) (map[string]interface{}, *Error) {
	out := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			out[key] = strings.TrimSpace(s)
			continue
		}
		out[key] = value
	}

	missing := make(map[string]string)
	for _, field := range desc.Required {
		value, present := out[field]
		if !present || value == nil {
			missing[field] = fmt.Sprintf("%s is required", field)
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			missing[field] = fmt.Sprintf("%s must not be empty", field)
		}
	}
	if len(missing) > 0 {
		return nil, ValidationFailure(missing)
	}

	for field, value := range desc.Defaults {
		if _, present := out[field]; !present {
			out[field] = value
		}
	}

	return out, nil
}

// NormalizeUpdate prepares a partial-update map: strings are trimmed and
// non-writable fields are dropped. Required-field and default handling do not
// apply, since a partial update only ever touches the keys it carries, and an
// explicit null survives as an intentional clear.
func NormalizeUpdate(desc Descriptor, raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		if !desc.FieldWritable(key) {
			continue
		}
		if s, ok := value.(string); ok {
			out[key] = strings.TrimSpace(s)
			continue
		}
		out[key] = value
	}
	return out
}

// Decode converts a normalized field map into the resource's model type via
// its JSON contract, so the snake_case field names line up with the struct
// tags. Unknown fields are rejected.
func Decode[T any](fields map[string]interface{}) (*T, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var entity T
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entity); err != nil {
		return nil, &Error{
			Class:   ClassValidation,
			Message: fmt.Sprintf("invalid request body: %v", err),
			cause:   err,
		}
	}
	return &entity, nil
}
