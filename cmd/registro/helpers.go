// Shared helpers for registro CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopmonkeyus/go-common/logger"

	"github.com/lupapyme/registro/internal/sqlite"
	"github.com/lupapyme/registro/pkg/service"
	"github.com/lupapyme/registro/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// attachService attaches the backend and wires a Service over its tables.
// The returned cleanup detaches the backend.
func attachService() (*service.Service, *sqlite.Backend, func(), error) {
	backend, err := attachBackend()
	if err != nil {
		return nil, nil, nil, err
	}
	defs, err := backend.Definitions()
	if err != nil {
		backend.Detach()
		return nil, nil, nil, err
	}
	recs, err := backend.Registros()
	if err != nil {
		backend.Detach()
		return nil, nil, nil, err
	}
	svc := service.New(defs, recs, logger.NewConsoleLogger())
	return svc, backend, func() { backend.Detach() }, nil
}

// requireTenant exits with a user error unless --tenant was given.
func requireTenant() string {
	if flagTenant == "" {
		fmt.Fprintln(os.Stderr, "a --tenant is required")
		os.Exit(exitUserError)
	}
	return flagTenant
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// sysErr prints the error under the command name and exits with the
// system error code.
func sysErr(cmd string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", cmd, err)
	os.Exit(exitSysError)
}

// userErr prints the message and exits with the user error code.
func userErr(cmd, msg string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", cmd, msg)
	os.Exit(exitUserError)
}

// parseDataArg parses a JSON object or array argument into a Payload.
func parseDataArg(raw string) (types.Payload, error) {
	var p types.Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return p, fmt.Errorf("data must be a JSON object or array: %w", err)
	}
	return p, nil
}
