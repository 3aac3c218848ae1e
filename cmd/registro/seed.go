// Seed command: demo definition and records for a fresh tenant.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo data for the tenant",
	Long: `Seed writes a demo product definition and a few records, including one
array row, so queries and analytics have data to show. A tenant that
already owns a definition is left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		backend, err := attachBackend()
		if err != nil {
			sysErr("seed", err)
		}
		defer backend.Detach()

		if err := backend.Seed(tenant); err != nil {
			sysErr("seed", err)
		}
		fmt.Println("Seeded demo data for tenant", tenant)
		return nil
	},
}
