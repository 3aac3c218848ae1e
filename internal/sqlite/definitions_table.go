// Model definition table accessor: one row per (tenant, tipo) record type,
// with the ordered field list stored as a JSON array.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lupapyme/registro/pkg/types"
)

// DefinitionsTable persists model definitions. Field lists are replaced
// wholesale on edit; no diffing against existing records.
type DefinitionsTable struct {
	backend *Backend
}

// Get returns the tenant's definition for the given record type.
// Returns ErrNotFound if no definition exists.
func (dt *DefinitionsTable) Get(tenantID, tipo string) (*types.ModelDefinition, error) {
	dt.backend.mu.RLock()
	defer dt.backend.mu.RUnlock()
	if !dt.backend.attached {
		return nil, types.ErrBackendDetached
	}

	row := dt.backend.db.QueryRow(
		"SELECT definition_id, tenant_id, tipo, campos, created_at FROM definitions WHERE tenant_id = ? AND tipo = ? ORDER BY created_at LIMIT 1",
		tenantID, tipo)
	return scanDefinition(row)
}

// GetByID returns a definition by primary key.
func (dt *DefinitionsTable) GetByID(id string) (*types.ModelDefinition, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	dt.backend.mu.RLock()
	defer dt.backend.mu.RUnlock()
	if !dt.backend.attached {
		return nil, types.ErrBackendDetached
	}

	row := dt.backend.db.QueryRow(
		"SELECT definition_id, tenant_id, tipo, campos, created_at FROM definitions WHERE definition_id = ?", id)
	return scanDefinition(row)
}

// ListByTenant returns every definition owned by the tenant.
func (dt *DefinitionsTable) ListByTenant(tenantID string) ([]*types.ModelDefinition, error) {
	dt.backend.mu.RLock()
	defer dt.backend.mu.RUnlock()
	if !dt.backend.attached {
		return nil, types.ErrBackendDetached
	}

	rows, err := dt.backend.db.Query(
		"SELECT definition_id, tenant_id, tipo, campos, created_at FROM definitions WHERE tenant_id = ? ORDER BY created_at DESC",
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("fetching definitions: %w", err)
	}
	defer rows.Close()

	results := []*types.ModelDefinition{}
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
		results = append(results, &def)
	}
	return results, rows.Err()
}

// Create stores a new definition and returns it with its generated ID.
// Campos are validated for name uniqueness and known field types.
func (dt *DefinitionsTable) Create(tenantID, tipo string, campos []types.FieldDef) (*types.ModelDefinition, error) {
	if err := types.ValidateCampos(campos); err != nil {
		return nil, err
	}
	dt.backend.mu.Lock()
	defer dt.backend.mu.Unlock()
	if !dt.backend.attached {
		return nil, types.ErrBackendDetached
	}

	def := &types.ModelDefinition{
		ID:        newUUID(),
		TenantID:  tenantID,
		Tipo:      tipo,
		Campos:    campos,
		CreatedAt: time.Now().UTC(),
	}
	camposJSON, err := json.Marshal(def.Campos)
	if err != nil {
		return nil, fmt.Errorf("marshaling campos: %w", err)
	}
	_, err = dt.backend.db.Exec(
		"INSERT INTO definitions (definition_id, tenant_id, tipo, campos, created_at) VALUES (?, ?, ?, ?, ?)",
		def.ID, def.TenantID, def.Tipo, string(camposJSON),
		def.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("inserting definition: %w", err)
	}
	return def, nil
}

// ReplaceFields swaps the definition's entire field list. No attempt is made
// to keep existing records compatible with the new fields.
func (dt *DefinitionsTable) ReplaceFields(id string, campos []types.FieldDef) (*types.ModelDefinition, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := types.ValidateCampos(campos); err != nil {
		return nil, err
	}
	dt.backend.mu.Lock()
	defer dt.backend.mu.Unlock()
	if !dt.backend.attached {
		return nil, types.ErrBackendDetached
	}

	camposJSON, err := json.Marshal(campos)
	if err != nil {
		return nil, fmt.Errorf("marshaling campos: %w", err)
	}
	res, err := dt.backend.db.Exec(
		"UPDATE definitions SET campos = ? WHERE definition_id = ?",
		string(camposJSON), id)
	if err != nil {
		return nil, fmt.Errorf("updating definition fields: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, types.ErrNotFound
	}

	row := dt.backend.db.QueryRow(
		"SELECT definition_id, tenant_id, tipo, campos, created_at FROM definitions WHERE definition_id = ?", id)
	return scanDefinition(row)
}

// Delete removes a definition unconditionally. Records of the definition's
// tipo are left orphaned; that is accepted, not prevented.
func (dt *DefinitionsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	dt.backend.mu.Lock()
	defer dt.backend.mu.Unlock()
	if !dt.backend.attached {
		return types.ErrBackendDetached
	}

	res, err := dt.backend.db.Exec("DELETE FROM definitions WHERE definition_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting definition: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// scanDefinition hydrates a single row into a *types.ModelDefinition.
func scanDefinition(row *sql.Row) (*types.ModelDefinition, error) {
	var (
		def       types.ModelDefinition
		camposRaw string
		createdAt string
	)
	err := row.Scan(&def.ID, &def.TenantID, &def.Tipo, &camposRaw, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning definition: %w", err)
	}
	if err := hydrateDefinition(&def, camposRaw, createdAt); err != nil {
		return nil, err
	}
	return &def, nil
}

func hydrateDefinition(def *types.ModelDefinition, camposRaw, createdAt string) error {
	if err := json.Unmarshal([]byte(camposRaw), &def.Campos); err != nil {
		return fmt.Errorf("parsing campos for definition %s: %w", def.ID, err)
	}
	var err error
	def.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return fmt.Errorf("parsing definition created_at: %w", err)
	}
	return nil
}
