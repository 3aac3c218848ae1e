// Record table accessor. The data column is stored exactly as supplied, in
// either the object or array encoding; nothing here validates the payload
// against the tenant's model definition.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lupapyme/registro/pkg/types"
)

// RegistrosTable persists business records. Updates replace the whole data
// document; the last writer wins.
type RegistrosTable struct {
	backend *Backend
}

// sortableColumns maps client-facing sort fields to row columns. Anything
// else sorts on the corresponding JSON data field.
var sortableColumns = map[string]string{
	"createdAt": "created_at",
	"id":        "registro_id",
	"tipo":      "tipo",
}

// Create stores a new record and returns its generated ID.
func (rt *RegistrosTable) Create(tenantID, tipo string, data types.Payload) (string, error) {
	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return "", types.ErrBackendDetached
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshaling data: %w", err)
	}
	id := newUUID()
	_, err = rt.backend.db.Exec(
		"INSERT INTO registros (registro_id, tenant_id, tipo, data, created_at) VALUES (?, ?, ?, ?, ?)",
		id, tenantID, tipo, string(dataJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("inserting registro: %w", err)
	}
	return id, nil
}

// FindOne returns the record with the given ID, scoped to the tenant.
// A row belonging to another tenant is ErrNotFound, never a leak.
func (rt *RegistrosTable) FindOne(id, tenantID string) (*types.Registro, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if !rt.backend.attached {
		return nil, types.ErrBackendDetached
	}

	row := rt.backend.db.QueryRow(
		"SELECT registro_id, tenant_id, tipo, data, created_at FROM registros WHERE registro_id = ? AND tenant_id = ?",
		id, tenantID)
	return scanRegistro(row)
}

// FindMany returns every tenant row matching the storage-level filter,
// ordered by created_at descending unless the filter overrides the sort.
// Pagination happens after flattening, in the service layer, so there is
// deliberately no LIMIT here.
func (rt *RegistrosTable) FindMany(tenantID string, filter types.RowFilter) ([]*types.Registro, error) {
	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if !rt.backend.attached {
		return nil, types.ErrBackendDetached
	}

	query := "SELECT registro_id, tenant_id, tipo, data, created_at FROM registros"
	conditions := []string{"tenant_id = ?"}
	args := []any{tenantID}

	if !filter.From.IsZero() && !filter.To.IsZero() {
		conditions = append(conditions, "created_at >= ?", "created_at <= ?")
		args = append(args,
			filter.From.UTC().Format(time.RFC3339),
			filter.To.UTC().Format(time.RFC3339))
	}
	if filter.OrderType != "" && filter.OrderType != types.OrderTypeAll {
		conditions = append(conditions, "json_extract(data, '$.orderType') = ?")
		args = append(args, filter.OrderType)
	}

	query += " WHERE " + strings.Join(conditions, " AND ")
	query += " ORDER BY " + orderClause(filter.Sort)

	rows, err := rt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching registros: %w", err)
	}
	defer rows.Close()

	results := []*types.Registro{}
	for rows.Next() {
		reg, err := scanRegistroFromRows(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, reg)
	}
	return results, rows.Err()
}

// UpdateData replaces the record's whole data document.
func (rt *RegistrosTable) UpdateData(id, tenantID string, data types.Payload) error {
	if id == "" {
		return types.ErrInvalidID
	}
	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return types.ErrBackendDetached
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling data: %w", err)
	}
	res, err := rt.backend.db.Exec(
		"UPDATE registros SET data = ? WHERE registro_id = ? AND tenant_id = ?",
		string(dataJSON), id, tenantID)
	if err != nil {
		return fmt.Errorf("updating registro: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes the record, scoped to the tenant.
func (rt *RegistrosTable) Delete(id, tenantID string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return types.ErrBackendDetached
	}

	res, err := rt.backend.db.Exec(
		"DELETE FROM registros WHERE registro_id = ? AND tenant_id = ?", id, tenantID)
	if err != nil {
		return fmt.Errorf("deleting registro: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// orderClause builds the ORDER BY expression for a sort override. Known
// columns sort natively; any other field sorts on the JSON data value.
func orderClause(sort *types.Sorting) string {
	if sort == nil || sort.Field == "" {
		return "created_at DESC"
	}
	dir := "DESC"
	if sort.Direction == types.SortAsc {
		dir = "ASC"
	}
	if col, ok := sortableColumns[sort.Field]; ok {
		return col + " " + dir
	}
	// Field names come from the tenant's definition; quote the JSON path
	// to keep it out of SQL syntax.
	path := strings.ReplaceAll(sort.Field, "'", "''")
	return fmt.Sprintf("json_extract(data, '$.%s') %s", path, dir)
}

// scanRegistro hydrates a single row into a *types.Registro.
func scanRegistro(row *sql.Row) (*types.Registro, error) {
	var (
		reg       types.Registro
		dataRaw   string
		createdAt string
	)
	err := row.Scan(&reg.ID, &reg.TenantID, &reg.Tipo, &dataRaw, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning registro: %w", err)
	}
	if err := hydrateRegistro(&reg, dataRaw, createdAt); err != nil {
		return nil, err
	}
	return &reg, nil
}

func scanRegistroFromRows(rows *sql.Rows) (*types.Registro, error) {
	var (
		reg       types.Registro
		dataRaw   string
		createdAt string
	)
	if err := rows.Scan(&reg.ID, &reg.TenantID, &reg.Tipo, &dataRaw, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning registro: %w", err)
	}
	if err := hydrateRegistro(&reg, dataRaw, createdAt); err != nil {
		return nil, err
	}
	return &reg, nil
}

func hydrateRegistro(reg *types.Registro, dataRaw, createdAt string) error {
	if err := json.Unmarshal([]byte(dataRaw), &reg.Data); err != nil {
		return fmt.Errorf("parsing data for registro %s: %w", reg.ID, err)
	}
	var err error
	reg.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return fmt.Errorf("parsing registro created_at: %w", err)
	}
	return nil
}
