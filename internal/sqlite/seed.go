// Demo-data seeding. Gives a fresh install one product definition and a
// handful of records so the query and analytics paths have something to
// show before the first import.
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lupapyme/registro/pkg/types"
)

// seedTipo is the record type the demo data is written under.
const seedTipo = "producto"

// seedFields is the demo product definition, in display order.
var seedFields = []types.FieldDef{
	{Name: "nombre", Label: "Nombre", Type: types.FieldTypeString, Required: true, Order: 1},
	{Name: "descripcion", Label: "Descripción", Type: types.FieldTypeText, Order: 2},
	{Name: "precio", Label: "Precio", Type: types.FieldTypeNumber, Required: true, Order: 3},
	{Name: "categoria", Label: "Categoría", Type: types.FieldTypeString, Order: 4},
	{Name: "stock", Label: "Stock", Type: types.FieldTypeNumber, Order: 5},
}

// seedRecords are the demo rows: plain products plus one multi-item row so
// array expansion shows up in listings out of the box.
var seedRecords = []types.Payload{
	types.ObjectPayload(map[string]any{
		"nombre": "Café de grano", "descripcion": "Tostado medio, 250g",
		"precio": 5990.0, "categoria": "alimentos", "stock": 24.0,
	}),
	types.ObjectPayload(map[string]any{
		"nombre": "Taza esmaltada", "descripcion": "Taza de 350ml",
		"precio": 3490.0, "categoria": "menaje", "stock": 40.0,
	}),
	types.ObjectArrayPayload([]map[string]any{
		{"nombre": "Té verde", "precio": 2990.0, "categoria": "alimentos", "stock": 15.0},
		{"nombre": "Té negro", "precio": 2990.0, "categoria": "alimentos", "stock": 12.0},
	}),
}

// Seed writes the demo definition and records for the tenant. Idempotent:
// a tenant that already owns any definition is left untouched.
func (b *Backend) Seed(tenantID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrBackendDetached
	}

	var count int
	if err := b.db.QueryRow(
		"SELECT COUNT(*) FROM definitions WHERE tenant_id = ?", tenantID).Scan(&count); err != nil {
		return fmt.Errorf("counting definitions: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	camposJSON, err := json.Marshal(seedFields)
	if err != nil {
		return fmt.Errorf("marshaling seed campos: %w", err)
	}
	_, err = tx.Exec(
		"INSERT INTO definitions (definition_id, tenant_id, tipo, campos, created_at) VALUES (?, ?, ?, ?, ?)",
		newUUID(), tenantID, seedTipo, string(camposJSON), now)
	if err != nil {
		return fmt.Errorf("seeding definition: %w", err)
	}

	for _, payload := range seedRecords {
		dataJSON, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling seed record: %w", err)
		}
		_, err = tx.Exec(
			"INSERT INTO registros (registro_id, tenant_id, tipo, data, created_at) VALUES (?, ?, ?, ?, ?)",
			newUUID(), tenantID, seedTipo, string(dataJSON), now)
		if err != nil {
			return fmt.Errorf("seeding record: %w", err)
		}
	}

	return tx.Commit()
}
