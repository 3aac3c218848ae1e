// Migrate command: rewrite deprecated positional rows in object form.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert positional records to object form",
	Long: `Migrate rewrites every record stored in the deprecated positional array
encoding as an object array, pairing values with the definition's fields in
display order. Rows whose record type has no definition are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		backend, err := attachBackend()
		if err != nil {
			sysErr("migrate", err)
		}
		defer backend.Detach()

		report, err := backend.MigratePositional(tenant)
		if err != nil {
			sysErr("migrate", err)
		}
		if flagJSON {
			return printJSON(report)
		}
		fmt.Printf("Scanned %d records: migrated %d, skipped %d\n",
			report.Scanned, report.Migrated, report.Skipped)
		return nil
	},
}
