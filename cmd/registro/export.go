// Export command: write a tenant's flattened records to CSV or JSONL.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lupapyme/registro/internal/spreadsheet"
	"github.com/lupapyme/registro/pkg/service"
	"github.com/lupapyme/registro/pkg/types"
)

var (
	exportFlagTipo   string
	exportFlagFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export records to CSV or JSONL",
	Long: `Export writes the tenant's records, array rows expanded, to a file.
CSV exports need --tipo so the definition's field labels can head the
columns; JSONL exports carry every record of the tenant as-is.

The format follows the file extension unless --format overrides it.

Example:
  registro export productos.csv --tenant acme --tipo producto`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		path := args[0]
		format := exportFormat(path)

		svc, backend, cleanup, err := attachService()
		if err != nil {
			sysErr("export", err)
		}
		defer cleanup()

		recs, err := backend.Registros()
		if err != nil {
			sysErr("export", err)
		}
		rows, err := recs.FindMany(tenant, types.RowFilter{})
		if err != nil {
			sysErr("export", err)
		}

		switch format {
		case "csv":
			if exportFlagTipo == "" {
				userErr("export", "CSV export needs --tipo")
			}
			def := svc.GetDefinition(tenant, exportFlagTipo).Data
			flat := []types.FlatRecord{}
			for _, reg := range rows {
				if reg.Tipo != exportFlagTipo {
					continue
				}
				flat = append(flat, service.FlattenRow(reg, def)...)
			}
			f, err := os.Create(path)
			if err != nil {
				sysErr("export", err)
			}
			defer f.Close()
			if err := spreadsheet.WriteCSV(f, def, flat); err != nil {
				sysErr("export", err)
			}
			fmt.Printf("Exported %d records to %s\n", len(flat), path)
		case "jsonl":
			lines := []json.RawMessage{}
			for _, reg := range rows {
				for _, rec := range service.FlattenRow(reg, nil) {
					line, err := json.Marshal(rec)
					if err != nil {
						sysErr("export", err)
					}
					lines = append(lines, line)
				}
			}
			if err := spreadsheet.WriteJSONL(path, lines); err != nil {
				sysErr("export", err)
			}
			fmt.Printf("Exported %d records to %s\n", len(lines), path)
		default:
			userErr("export", "unknown format "+format)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFlagTipo, "tipo", "", "record type to export (required for CSV)")
	exportCmd.Flags().StringVar(&exportFlagFormat, "format", "", "csv or jsonl (default: by file extension)")
}

func exportFormat(path string) string {
	if exportFlagFormat != "" {
		return exportFlagFormat
	}
	if strings.HasSuffix(path, ".jsonl") {
		return "jsonl"
	}
	return "csv"
}
