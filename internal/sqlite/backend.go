package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lupapyme/registro/pkg/types"
)

// dbFileName is the SQLite database file inside the data directory.
const dbFileName = "registro.db"

// Backend owns the SQLite connection and the table accessors. Unlike a
// per-request connection pool, a Backend is attached once and shared; the
// mutex serializes multi-statement operations that SQLite's single-writer
// model would otherwise interleave.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	definitions *DefinitionsTable
	registros   *RegistrosTable
}

// NewBackend creates an unattached backend. Call Attach with a Config to
// open the database and initialize the schema.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (or creates) the database under config.DataDir and runs the
// schema DDL. Returns ErrAlreadyAttached if called twice.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("initializing schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	b.definitions = &DefinitionsTable{backend: b}
	b.registros = &RegistrosTable{backend: b}
	return nil
}

// Detach closes the database. Idempotent; after Detach all table operations
// return ErrBackendDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.definitions = nil
	b.registros = nil
	return nil
}

// Definitions returns the model definition table accessor.
func (b *Backend) Definitions() (*DefinitionsTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.definitions, nil
}

// Registros returns the record table accessor.
func (b *Backend) Registros() (*RegistrosTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.registros, nil
}

// newUUID generates a UUID v7 string, falling back to v4 if the clock-based
// generation fails.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
