// Package integration exercises the service layer over a real SQLite
// backend, end to end.
package integration

import (
	"testing"

	"github.com/shopmonkeyus/go-common/logger"
	"github.com/stretchr/testify/require"

	"github.com/lupapyme/registro/internal/sqlite"
	"github.com/lupapyme/registro/pkg/service"
	"github.com/lupapyme/registro/pkg/types"
)

// setupService attaches a backend to an isolated temp directory and wires
// the service over it. Each test gets its own database.
func setupService(t *testing.T) (*service.Service, *sqlite.Backend) {
	t.Helper()

	backend := sqlite.NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, backend.Attach(config))
	t.Cleanup(func() { backend.Detach() })

	definitions, err := backend.Definitions()
	require.NoError(t, err)
	registros, err := backend.Registros()
	require.NoError(t, err)

	return service.New(definitions, registros, logger.NewTestLogger()), backend
}
