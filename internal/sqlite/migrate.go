// One-shot migration of records stored in the deprecated positional array
// encoding to the object-per-item encoding. Positional rows are only
// readable through the owning definition's field order; once that order
// changes they are garbage, so the fix is to rewrite them while the order
// still holds.
package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/lupapyme/registro/pkg/types"
)

// MigrationReport summarizes a MigratePositional run.
type MigrationReport struct {
	Scanned  int `json:"scanned"`
	Migrated int `json:"migrated"`
	// Skipped counts positional rows left untouched because their tipo has
	// no definition to supply a field order.
	Skipped int `json:"skipped"`
}

// MigratePositional rewrites every positional-encoded record of the tenant
// as a single-item object array, mapping values onto the definition's
// fields in display order. Values beyond the field list are dropped.
func (b *Backend) MigratePositional(tenantID string) (MigrationReport, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var report MigrationReport
	if !b.attached {
		return report, types.ErrBackendDetached
	}

	defs, err := b.definitionsByTipo(tenantID)
	if err != nil {
		return report, err
	}

	rows, err := b.db.Query(
		"SELECT registro_id, tipo, data FROM registros WHERE tenant_id = ?", tenantID)
	if err != nil {
		return report, fmt.Errorf("fetching registros: %w", err)
	}
	defer rows.Close()

	type rewrite struct {
		id   string
		data string
	}
	var rewrites []rewrite

	for rows.Next() {
		var id, tipo, dataRaw string
		if err := rows.Scan(&id, &tipo, &dataRaw); err != nil {
			return report, fmt.Errorf("scanning registro: %w", err)
		}
		report.Scanned++

		var payload types.Payload
		if err := json.Unmarshal([]byte(dataRaw), &payload); err != nil {
			return report, fmt.Errorf("parsing data for registro %s: %w", id, err)
		}
		if payload.Encoding() != types.EncodingPositional {
			continue
		}

		def, ok := defs[tipo]
		if !ok {
			report.Skipped++
			continue
		}

		migrated := positionalToObject(payload.Positional(), def.CamposInOrder())
		dataJSON, err := json.Marshal(types.ObjectArrayPayload([]map[string]any{migrated}))
		if err != nil {
			return report, fmt.Errorf("marshaling migrated data: %w", err)
		}
		rewrites = append(rewrites, rewrite{id: id, data: string(dataJSON)})
	}
	if err := rows.Err(); err != nil {
		return report, fmt.Errorf("iterating registros: %w", err)
	}
	rows.Close()

	if len(rewrites) == 0 {
		return report, nil
	}

	tx, err := b.db.Begin()
	if err != nil {
		return report, fmt.Errorf("beginning migration transaction: %w", err)
	}
	defer tx.Rollback()
	for _, rw := range rewrites {
		if _, err := tx.Exec(
			"UPDATE registros SET data = ? WHERE registro_id = ? AND tenant_id = ?",
			rw.data, rw.id, tenantID); err != nil {
			return report, fmt.Errorf("rewriting registro %s: %w", rw.id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("committing migration: %w", err)
	}
	report.Migrated = len(rewrites)
	return report, nil
}

// definitionsByTipo loads the tenant's definitions keyed by record type.
// When a tipo has several definitions the oldest wins, matching the lookup
// the read path uses.
func (b *Backend) definitionsByTipo(tenantID string) (map[string]*types.ModelDefinition, error) {
	rows, err := b.db.Query(
		"SELECT definition_id, tenant_id, tipo, campos, created_at FROM definitions WHERE tenant_id = ? ORDER BY created_at DESC",
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("fetching definitions: %w", err)
	}
	defer rows.Close()

	defs := map[string]*types.ModelDefinition{}
	for rows.Next() {
		var (
			def       types.ModelDefinition
			camposRaw string
			createdAt string
		)
		if err := rows.Scan(&def.ID, &def.TenantID, &def.Tipo, &camposRaw, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning definition: %w", err)
		}
		if err := hydrateDefinition(&def, camposRaw, createdAt); err != nil {
			return nil, err
		}
		defs[def.Tipo] = &def
	}
	return defs, rows.Err()
}

// positionalToObject pairs values with fields by position. Shorter of the
// two wins; there is nothing sensible to do with an unmatched value.
func positionalToObject(values []any, campos []types.FieldDef) map[string]any {
	obj := make(map[string]any, len(campos))
	for i, c := range campos {
		if i >= len(values) {
			break
		}
		obj[c.Name] = values[i]
	}
	return obj
}
