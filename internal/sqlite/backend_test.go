package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupapyme/registro/pkg/types"
)

// setupBackend creates an attached Backend over a temp directory, detached
// on cleanup.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackendLifecycle(t *testing.T) {
	t.Run("attach creates the database file", func(t *testing.T) {
		dir := t.TempDir()
		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
		defer b.Detach()

		assert.FileExists(t, filepath.Join(dir, dbFileName))
	})

	t.Run("double attach fails", func(t *testing.T) {
		b := setupBackend(t)
		err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrAlreadyAttached)
	})

	t.Run("detach is idempotent", func(t *testing.T) {
		b := setupBackend(t)
		require.NoError(t, b.Detach())
		require.NoError(t, b.Detach())
	})

	t.Run("accessors fail after detach", func(t *testing.T) {
		b := setupBackend(t)
		require.NoError(t, b.Detach())

		_, err := b.Definitions()
		assert.ErrorIs(t, err, types.ErrBackendDetached)
		_, err = b.Registros()
		assert.ErrorIs(t, err, types.ErrBackendDetached)
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		b := NewBackend()
		err := b.Attach(types.Config{Backend: "oracle", DataDir: t.TempDir()})
		assert.Error(t, err)
	})

	t.Run("data survives reattach", func(t *testing.T) {
		dir := t.TempDir()
		cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

		b := NewBackend()
		require.NoError(t, b.Attach(cfg))
		defs, err := b.Definitions()
		require.NoError(t, err)
		created, err := defs.Create("acme", "producto", []types.FieldDef{
			{Name: "nombre", Type: types.FieldTypeString},
		})
		require.NoError(t, err)
		require.NoError(t, b.Detach())

		b2 := NewBackend()
		require.NoError(t, b2.Attach(cfg))
		defer b2.Detach()
		defs2, err := b2.Definitions()
		require.NoError(t, err)
		got, err := defs2.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "producto", got.Tipo)
	})
}
