package types

import "time"

// Field types accepted in a model definition. These describe how the UI
// renders and validates a field; the storage layer stores values untyped.
const (
	FieldTypeString   = "string"
	FieldTypeText     = "text"
	FieldTypeNumber   = "number"
	FieldTypeBoolean  = "boolean"
	FieldTypeDate     = "date"
	FieldTypeEmail    = "email"
	FieldTypePhone    = "phone"
	FieldTypeURL      = "url"
	FieldTypeTextarea = "textarea"
	FieldTypeSelect   = "select"
)

// validFieldTypes is the set of recognized field type values.
var validFieldTypes = map[string]bool{
	FieldTypeString:   true,
	FieldTypeText:     true,
	FieldTypeNumber:   true,
	FieldTypeBoolean:  true,
	FieldTypeDate:     true,
	FieldTypeEmail:    true,
	FieldTypePhone:    true,
	FieldTypeURL:      true,
	FieldTypeTextarea: true,
	FieldTypeSelect:   true,
}

// IsValidFieldType reports whether t is a recognized field type.
func IsValidFieldType(t string) bool {
	return validFieldTypes[t]
}

// FieldDef describes one field of a model definition. Name is the storage
// key; Label is what the UI and spreadsheet headers show. Order drives the
// positional mapping for rows stored in the deprecated positional encoding.
type FieldDef struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required,omitempty"`
	Order    int      `json:"order,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// ModelDefinition is a tenant's named record type: an ordered list of typed
// fields. Definitions are replaced wholesale on edit; deleting one does not
// touch its records.
type ModelDefinition struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenantId"`
	Tipo      string     `json:"tipo"`
	Campos    []FieldDef `json:"campos"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ValidateCampos checks that every field has a non-empty name unique within
// the definition and a recognized type. Returns a sentinel error from this
// package on failure.
func ValidateCampos(campos []FieldDef) error {
	seen := make(map[string]bool, len(campos))
	for _, c := range campos {
		if c.Name == "" {
			return ErrEmptyFieldName
		}
		if seen[c.Name] {
			return ErrDuplicateFieldName
		}
		seen[c.Name] = true
		if !IsValidFieldType(c.Type) {
			return ErrInvalidFieldType
		}
	}
	return nil
}

// CamposInOrder returns the fields sorted by Order ascending, stable for
// equal orders. The receiver's slice is not modified.
func (m *ModelDefinition) CamposInOrder() []FieldDef {
	out := make([]FieldDef, len(m.Campos))
	copy(out, m.Campos)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Order > out[j].Order; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// FieldByName returns the field descriptor with the given name.
func (m *ModelDefinition) FieldByName(name string) (FieldDef, bool) {
	for _, c := range m.Campos {
		if c.Name == name {
			return c, true
		}
	}
	return FieldDef{}, false
}
