// Package sqlite is the public entry point for programs embedding the
// record store as a library. It opens the SQLite backend and wires the
// record service over it while keeping the storage details internal.
package sqlite

import (
	"fmt"

	"github.com/shopmonkeyus/go-common/logger"

	"github.com/lupapyme/registro/internal/sqlite"
	"github.com/lupapyme/registro/pkg/service"
	"github.com/lupapyme/registro/pkg/types"
)

// Open attaches a SQLite backend per the config and returns the record
// service over it, together with a close function that detaches the
// backend.
//
// Example:
//
//	svc, close, err := sqlite.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".registro-db",
//	}, logger.NewConsoleLogger())
//	if err != nil {
//	    return err
//	}
//	defer close()
func Open(config types.Config, log logger.Logger) (*service.Service, func() error, error) {
	backend := sqlite.NewBackend()
	if err := backend.Attach(config); err != nil {
		return nil, nil, fmt.Errorf("attaching backend: %w", err)
	}

	definitions, err := backend.Definitions()
	if err != nil {
		backend.Detach()
		return nil, nil, err
	}
	registros, err := backend.Registros()
	if err != nil {
		backend.Detach()
		return nil, nil, err
	}

	return service.New(definitions, registros, log), backend.Detach, nil
}
