package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupapyme/registro/pkg/types"
)

var testCreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testRow(id string, data types.Payload) *types.Registro {
	return &types.Registro{
		ID:        id,
		TenantID:  "acme",
		Tipo:      "producto",
		Data:      data,
		CreatedAt: testCreatedAt,
	}
}

func TestFlattenRow_Object(t *testing.T) {
	reg := testRow("r1", types.ObjectPayload(map[string]any{"nombre": "Café"}))

	got := FlattenRow(reg, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "acme", got[0].TenantID)
	assert.Equal(t, testCreatedAt, got[0].CreatedAt)
	assert.False(t, got[0].Expanded())
	assert.Equal(t, map[string]any{"nombre": "Café"}, got[0].Fields)
}

func TestFlattenRow_ObjectArray(t *testing.T) {
	reg := testRow("r2", types.ObjectArrayPayload([]map[string]any{
		{"nombre": "Té verde"},
		{"nombre": "Té negro"},
		{"nombre": "Té rojo"},
	}))

	got := FlattenRow(reg, nil)
	require.Len(t, got, 3)
	for i, rec := range got {
		assert.Equal(t, types.EncodeItemID("r2", i), rec.ID)
		assert.Equal(t, "r2", rec.OriginalID)
		assert.Equal(t, i, rec.ItemIndex)
		assert.True(t, rec.Expanded())
		assert.Equal(t, testCreatedAt, rec.CreatedAt)
	}
	assert.Equal(t, "Té negro", got[1].Fields["nombre"])
}

func TestFlattenRow_EmptyArray(t *testing.T) {
	reg := testRow("r3", types.ObjectArrayPayload(nil))
	assert.Empty(t, FlattenRow(reg, nil))
}

func TestFlattenRow_Positional(t *testing.T) {
	def := &types.ModelDefinition{Campos: []types.FieldDef{
		{Name: "precio", Type: types.FieldTypeNumber, Order: 2},
		{Name: "nombre", Type: types.FieldTypeString, Order: 1},
	}}
	reg := testRow("r4", types.PositionalPayload([]any{"Café", 5990.0, "sobra"}))

	got := FlattenRow(reg, def)
	require.Len(t, got, 1)
	assert.Equal(t, "r4", got[0].ID)
	assert.False(t, got[0].Expanded())
	// Values pair with fields in display order; the extra value is dropped.
	assert.Equal(t, map[string]any{"nombre": "Café", "precio": 5990.0}, got[0].Fields)
}

func TestFlattenRow_PositionalWithoutDefinition(t *testing.T) {
	reg := testRow("r5", types.PositionalPayload([]any{"Café"}))

	got := FlattenRow(reg, nil)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Fields)
}

func TestFlattenRow_CopiesFields(t *testing.T) {
	data := map[string]any{"nombre": "Café"}
	reg := testRow("r6", types.ObjectPayload(data))

	got := FlattenRow(reg, nil)
	got[0].Fields["nombre"] = "mutado"
	assert.Equal(t, "Café", data["nombre"])
}
