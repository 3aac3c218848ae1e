package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCampos(t *testing.T) {
	tests := []struct {
		name    string
		campos  []FieldDef
		wantErr error
	}{
		{
			name: "valid fields",
			campos: []FieldDef{
				{Name: "nombre", Type: FieldTypeString},
				{Name: "precio", Type: FieldTypeNumber},
			},
		},
		{
			name:   "empty list is valid",
			campos: nil,
		},
		{
			name: "empty name",
			campos: []FieldDef{
				{Name: "", Type: FieldTypeString},
			},
			wantErr: ErrEmptyFieldName,
		},
		{
			name: "duplicate name",
			campos: []FieldDef{
				{Name: "nombre", Type: FieldTypeString},
				{Name: "nombre", Type: FieldTypeText},
			},
			wantErr: ErrDuplicateFieldName,
		},
		{
			name: "unknown type",
			campos: []FieldDef{
				{Name: "nombre", Type: "varchar"},
			},
			wantErr: ErrInvalidFieldType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCampos(tt.campos)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCamposInOrder(t *testing.T) {
	def := ModelDefinition{Campos: []FieldDef{
		{Name: "c", Order: 3},
		{Name: "a", Order: 1},
		{Name: "b", Order: 2},
		{Name: "b2", Order: 2},
	}}

	got := def.CamposInOrder()
	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Name
	}
	// Stable for equal orders: b before b2.
	assert.Equal(t, []string{"a", "b", "b2", "c"}, names)

	// Receiver untouched.
	assert.Equal(t, "c", def.Campos[0].Name)
}

func TestFieldByName(t *testing.T) {
	def := ModelDefinition{Campos: []FieldDef{
		{Name: "nombre", Label: "Nombre"},
	}}

	f, ok := def.FieldByName("nombre")
	assert.True(t, ok)
	assert.Equal(t, "Nombre", f.Label)

	_, ok = def.FieldByName("precio")
	assert.False(t, ok)
}
