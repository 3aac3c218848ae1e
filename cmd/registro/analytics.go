// Analytics command: client segmentation over a tenant's records.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Segment the tenant's client base",
	Long: `Analytics groups the tenant's records into per-client profiles and
buckets them by purchase frequency, average order value and recency.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("analytics", err)
		}
		defer cleanup()

		res := svc.Analytics(tenant)
		if flagJSON {
			return printJSON(res)
		}
		if !res.Success {
			userErr("analytics", res.Error)
		}

		a := res.Data
		fmt.Printf("Clients:             %d\n", a.TotalClients)
		fmt.Printf("Avg spending:        %.2f\n", a.Summary.AverageMonthlySpending)
		fmt.Printf("Repeat rate:         %.1f%%\n", a.Summary.RepeatCustomerRate)
		fmt.Printf("Avg orders/customer: %.2f\n", a.Summary.AverageOrdersPerCustomer)
		if len(a.Categories) > 0 {
			fmt.Println("Segments:")
			for _, c := range a.Categories {
				fmt.Printf("  %-10s %4d (%.1f%%)  %s\n", c.Category, c.Count, c.Percentage, c.Description)
			}
		}
		return nil
	},
}
