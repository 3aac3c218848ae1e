// Import command: load spreadsheet rows as object-form records.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lupapyme/registro/internal/spreadsheet"
	"github.com/lupapyme/registro/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import <tipo> <file>",
	Short: "Import records from CSV or JSONL",
	Long: `Import reads a CSV spreadsheet or a JSONL backup and stores each row as
one object-form record of the given record type. CSV columns map to the
definition's fields by header, tolerating lowercase and partial matches;
columns matching no field are dropped. UTF-8 (with or without BOM) and
Windows-1252 input both work.

Example:
  registro import producto productos.csv --tenant acme`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		tipo, path := args[0], args[1]

		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("import", err)
		}
		defer cleanup()

		var rows []map[string]any
		if strings.HasSuffix(path, ".jsonl") {
			rows, err = readJSONLRows(path)
		} else {
			rows, err = readCSVRows(path, svc.GetDefinition(tenant, tipo).Data)
		}
		if err != nil {
			sysErr("import", err)
		}

		imported := 0
		for _, data := range rows {
			res := svc.Create(tenant, tipo, types.ObjectPayload(data))
			if !res.Success {
				userErr("import", res.Error)
			}
			imported++
		}
		fmt.Printf("Imported %d records from %s\n", imported, path)
		return nil
	},
}

func readCSVRows(path string, def *types.ModelDefinition) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return spreadsheet.ReadCSV(f, def)
}

// readJSONLRows reads a JSONL backup, dropping the bookkeeping fields a
// previous export added so re-imported records get fresh identities.
func readJSONLRows(path string) ([]map[string]any, error) {
	lines, err := spreadsheet.ReadJSONL(path)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		var m map[string]any
		if err := json.Unmarshal(line, &m); err != nil {
			continue
		}
		for name := range types.ReservedFieldNames {
			delete(m, name)
		}
		rows = append(rows, m)
	}
	return rows, nil
}
