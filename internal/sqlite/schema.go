// Package sqlite implements the SQLite storage backend for Registro.
// It persists model definitions and business records, with the record data
// column stored as raw JSON in whichever encoding the caller supplied.
package sqlite

// Schema DDL. The data and campos columns hold JSON text; records written
// by earlier versions of the system load unchanged.
const (
	createDefinitions = `CREATE TABLE IF NOT EXISTS definitions (
    definition_id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    tipo TEXT NOT NULL,
    campos TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createRegistros = `CREATE TABLE IF NOT EXISTS registros (
    registro_id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    tipo TEXT NOT NULL,
    data TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

// Index DDL for the common lookups: definition by (tenant, tipo) and the
// full-tenant record scan ordered by creation time.
const (
	idxDefinitionsTenantTipo  = `CREATE INDEX IF NOT EXISTS idx_definitions_tenant_tipo ON definitions(tenant_id, tipo);`
	idxRegistrosTenant        = `CREATE INDEX IF NOT EXISTS idx_registros_tenant ON registros(tenant_id);`
	idxRegistrosTenantCreated = `CREATE INDEX IF NOT EXISTS idx_registros_tenant_created ON registros(tenant_id, created_at);`
)

// schemaDDL lists all CREATE statements in execution order.
var schemaDDL = []string{
	createDefinitions,
	createRegistros,
	idxDefinitionsTenantTipo,
	idxRegistrosTenant,
	idxRegistrosTenantCreated,
}
