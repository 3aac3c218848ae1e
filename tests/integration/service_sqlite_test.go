package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupapyme/registro/pkg/types"
)

func TestRecordLifecycle(t *testing.T) {
	svc, _ := setupService(t)

	created := svc.Create("acme", "producto",
		types.ObjectPayload(map[string]any{"nombre": "Café", "precio": 5990.0}))
	require.True(t, created.Success)
	require.NotEmpty(t, created.ID)

	got := svc.Get(created.ID, "acme")
	require.True(t, got.Success)
	assert.Equal(t, "Café", got.Data.Fields["nombre"])

	require.True(t, svc.Update(created.ID, "acme", map[string]any{"nombre": "Té"}).Success)
	got = svc.Get(created.ID, "acme")
	require.True(t, got.Success)
	assert.Equal(t, "Té", got.Data.Fields["nombre"])
	// Update replaces the whole document.
	_, hasPrecio := got.Data.Fields["precio"]
	assert.False(t, hasPrecio)

	require.True(t, svc.Delete(created.ID, "acme").Success)
	assert.False(t, svc.Get(created.ID, "acme").Success)
}

func TestArrayRowLifecycle(t *testing.T) {
	svc, backend := setupService(t)

	registros, err := backend.Registros()
	require.NoError(t, err)
	rowID, err := registros.Create("acme", "pedido", types.ObjectArrayPayload([]map[string]any{
		{"nombre": "primero"},
		{"nombre": "segundo"},
		{"nombre": "tercero"},
	}))
	require.NoError(t, err)

	q := svc.Query("acme", types.Pagination{}, types.Filters{}, nil)
	require.True(t, q.Success)
	require.Len(t, q.Data, 3)
	assert.Equal(t, types.EncodeItemID(rowID, 0), q.Data[0].ID)

	itemID := types.EncodeItemID(rowID, 1)
	require.True(t, svc.Update(itemID, "acme", map[string]any{"precio": 100.0}).Success)
	got := svc.Get(itemID, "acme")
	require.True(t, got.Success)
	// Item updates merge, keeping the untouched keys.
	assert.Equal(t, "segundo", got.Data.Fields["nombre"])
	assert.Equal(t, 100.0, got.Data.Fields["precio"])

	require.True(t, svc.Delete(itemID, "acme").Success)
	q = svc.Query("acme", types.Pagination{}, types.Filters{}, nil)
	require.Len(t, q.Data, 2)
	// The item after the deleted one shifts down.
	assert.Equal(t, "tercero", svc.Get(types.EncodeItemID(rowID, 1), "acme").Data.Fields["nombre"])
}

func TestTenantIsolation(t *testing.T) {
	svc, _ := setupService(t)

	created := svc.Create("acme", "producto", types.ObjectPayload(map[string]any{"nombre": "Café"}))
	require.True(t, created.Success)

	assert.False(t, svc.Get(created.ID, "otro").Success)
	assert.False(t, svc.Update(created.ID, "otro", map[string]any{"nombre": "x"}).Success)
	assert.False(t, svc.Delete(created.ID, "otro").Success)

	q := svc.Query("otro", types.Pagination{}, types.Filters{}, nil)
	require.True(t, q.Success)
	assert.Empty(t, q.Data)
}

func TestDefinitionLifecycle(t *testing.T) {
	svc, _ := setupService(t)

	created := svc.CreateDefinition("acme", "cliente", []types.FieldDef{
		{Name: "nombre", Label: "Nombre", Type: types.FieldTypeString, Order: 1},
		{Name: "email", Label: "Email", Type: types.FieldTypeString, Order: 2},
	})
	require.True(t, created.Success)
	require.NotEmpty(t, created.Data.ID)

	got := svc.GetDefinition("acme", "cliente")
	require.True(t, got.Success)
	assert.Equal(t, created.Data.ID, got.Data.ID)
	assert.Len(t, got.Data.Campos, 2)

	replaced := svc.ReplaceDefinitionFields(created.Data.ID, []types.FieldDef{
		{Name: "rut", Type: types.FieldTypeString, Order: 1},
	})
	require.True(t, replaced.Success)

	got = svc.GetDefinition("acme", "cliente")
	require.True(t, got.Success)
	require.Len(t, got.Data.Campos, 1)
	assert.Equal(t, "rut", got.Data.Campos[0].Name)

	require.True(t, svc.DeleteDefinition(created.Data.ID).Success)
	// Missing definitions degrade to the default set.
	got = svc.GetDefinition("acme", "cliente")
	require.True(t, got.Success)
	assert.Empty(t, got.Data.ID)
}

func TestSearchAndPagination(t *testing.T) {
	svc, _ := setupService(t)

	names := []string{"Café de grano", "Café instantáneo", "Taza", "Tetera", "Té verde"}
	for _, n := range names {
		require.True(t, svc.Create("acme", "producto",
			types.ObjectPayload(map[string]any{"nombre": n})).Success)
	}

	res := svc.Query("acme", types.Pagination{Page: 1, PageSize: 10},
		types.Filters{Search: "café"}, nil)
	require.True(t, res.Success)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, 2, res.Pagination.Total)

	res = svc.Query("acme", types.Pagination{Page: 2, PageSize: 2}, types.Filters{}, nil)
	require.True(t, res.Success)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, 5, res.Pagination.Total)
	assert.Equal(t, 3, res.Pagination.PageCount)
}

func TestSeedThenQuery(t *testing.T) {
	svc, backend := setupService(t)

	require.NoError(t, backend.Seed("acme"))
	// Seeding twice changes nothing.
	require.NoError(t, backend.Seed("acme"))

	def := svc.GetDefinition("acme", "producto")
	require.True(t, def.Success)
	assert.NotEmpty(t, def.Data.ID)

	q := svc.Query("acme", types.Pagination{}, types.Filters{}, nil)
	require.True(t, q.Success)
	// Two plain rows plus a two-item array row.
	assert.Len(t, q.Data, 4)
}

func TestMigratePositionalRows(t *testing.T) {
	svc, backend := setupService(t)

	require.True(t, svc.CreateDefinition("acme", "producto", []types.FieldDef{
		{Name: "nombre", Type: types.FieldTypeString, Order: 1},
		{Name: "precio", Type: types.FieldTypeNumber, Order: 2},
	}).Success)

	registros, err := backend.Registros()
	require.NoError(t, err)
	rowID, err := registros.Create("acme", "producto",
		types.PositionalPayload([]any{"Café", 5990.0}))
	require.NoError(t, err)

	report, err := backend.MigratePositional("acme")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Migrated)

	reg, err := registros.FindOne(rowID, "acme")
	require.NoError(t, err)
	require.Equal(t, types.EncodingObjectArray, reg.Data.Encoding())
	items := reg.Data.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Café", items[0]["nombre"])
	assert.Equal(t, 5990.0, items[0]["precio"])
}

func TestAnalyticsOverStore(t *testing.T) {
	svc, _ := setupService(t)

	require.True(t, svc.Create("acme", "pedido",
		types.ObjectPayload(map[string]any{"clienteId": "c1", "total": 1000.0})).Success)
	require.True(t, svc.Create("acme", "pedido",
		types.ObjectPayload(map[string]any{"clienteId": "c1", "total": 2000.0})).Success)
	require.True(t, svc.Create("acme", "pedido",
		types.ObjectPayload(map[string]any{"clienteId": "c2", "total": 500.0})).Success)

	res := svc.Analytics("acme")
	require.True(t, res.Success)
	assert.Equal(t, 2, res.Data.TotalClients)
	assert.InDelta(t, 1750, res.Data.Summary.AverageMonthlySpending, 0.01)
	assert.NotEmpty(t, res.Data.Categories)
}
